package tile

import (
	"strings"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Size is the size class of a tile. The zero value is not a valid size.
type Size uint8

const (
	Square Size = iota + 1
	FullWidth
	DoubleHeight
	HalfHeight
)

// sizeNames maps each size to its canonical text form followed by the
// long-form aliases accepted on input.
var sizeNames = map[Size][]string{
	Square:       {"1x1", "square"},
	FullWidth:    {"2x1", "full-width", "fullwidth"},
	DoubleHeight: {"1x2", "double-height", "doubleheight"},
	HalfHeight:   {"1x0.5", "half-height", "halfheight"},
}

// allSizes lists every valid size in declaration order.
var allSizes = []Size{Square, FullWidth, DoubleHeight, HalfHeight}

// AllSizes returns every valid size in declaration order.
func AllSizes() []Size { return append([]Size(nil), allSizes...) }

// Valid reports whether s is one of the four size classes.
func (s Size) Valid() bool { return s >= Square && s <= HalfHeight }

// String returns the canonical text form ("1x1", "2x1", "1x2", "1x0.5").
func (s Size) String() string {
	if names, ok := sizeNames[s]; ok {
		return names[0]
	}
	return "invalid"
}

// Name returns the long-form name, e.g. "double-height".
func (s Size) Name() string {
	if names, ok := sizeNames[s]; ok {
		return names[1]
	}
	return "invalid"
}

// ParseSize parses either the canonical or the long form of a size,
// ignoring case and surrounding whitespace.
func ParseSize(text string) (Size, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, s := range allSizes {
		for _, name := range sizeNames[s] {
			if text == name {
				return s, nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSize, "unknown tile size %q (want 1x1, 2x1, 1x2 or 1x0.5)", text)
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSize, "cannot encode invalid tile size %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSizes parses a comma or whitespace separated list of sizes.
func ParseSizes(text string) ([]Size, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]Size, 0, len(fields))
	for i, f := range fields {
		s, err := ParseSize(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSize, err, "tile %d", i)
		}
		out = append(out, s)
	}
	return out, nil
}

func formatSizes(sizes []Size) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
