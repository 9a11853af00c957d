package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatDiagram = "diagram"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatDiagram}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatDiagram {
		return "diagram.svg"
	}
	return format
}

// ParseFormats splits a comma separated list, trims and lowercases each
// entry and drops duplicates. An empty list yields [FormatSVG].
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !slices.Contains(Formats, f) {
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want %s)", f, strings.Join(Formats, ", "))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []string{FormatSVG}
	}
	return out, nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
		}
	}
	return nil
}
