package render

import (
	"slices"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"SVG, png,json", []string{"svg", "png", "json"}},
		{"dot,dot,diagram", []string{"dot", "diagram"}},
		{" , ", []string{"svg"}},
	}
	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if err != nil {
			t.Errorf("ParseFormats(%q): %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormats("svg,pdf"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("pdf: got %v, want UNSUPPORTED", err)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats(Formats); err != nil {
		t.Errorf("all formats: %v", err)
	}
	if err := ValidateFormats([]string{"gif"}); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestExtension(t *testing.T) {
	if Extension(FormatDiagram) != "diagram.svg" || Extension(FormatPNG) != "png" {
		t.Error("unexpected extensions")
	}
}
