package tile

import (
	"slices"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Pattern describes how one to four consecutive tiles fill one segment.
// The zero value is not a valid pattern.
type Pattern uint8

const (
	OneFullWidth Pattern = iota + 1
	TwoDoubleHeights
	TwoSquares
	TwoHalfHeightsAndOneSquare
	OneSquareAndTwoHalfHeights
	FourHalfHeights
)

// MaxGroup is the largest number of tiles any pattern consumes.
const MaxGroup = 4

var patternNames = map[Pattern]string{
	OneFullWidth:               "one-full-width",
	TwoDoubleHeights:           "two-double-heights",
	TwoSquares:                 "two-squares",
	TwoHalfHeightsAndOneSquare: "two-half-heights-and-one-square",
	OneSquareAndTwoHalfHeights: "one-square-and-two-half-heights",
	FourHalfHeights:            "four-half-heights",
}

// signatures lists the exact sizes each pattern consumes, in tile order.
var signatures = map[Pattern][]Size{
	OneFullWidth:               {FullWidth},
	TwoDoubleHeights:           {DoubleHeight, DoubleHeight},
	TwoSquares:                 {Square, Square},
	TwoHalfHeightsAndOneSquare: {HalfHeight, HalfHeight, Square},
	OneSquareAndTwoHalfHeights: {Square, HalfHeight, HalfHeight},
	FourHalfHeights:            {HalfHeight, HalfHeight, HalfHeight, HalfHeight},
}

var allPatterns = []Pattern{
	OneFullWidth,
	TwoDoubleHeights,
	TwoSquares,
	TwoHalfHeightsAndOneSquare,
	OneSquareAndTwoHalfHeights,
	FourHalfHeights,
}

// AllPatterns returns every valid pattern in declaration order.
func AllPatterns() []Pattern { return append([]Pattern(nil), allPatterns...) }

// Valid reports whether p is a known pattern.
func (p Pattern) Valid() bool { return p >= OneFullWidth && p <= FourHalfHeights }

// String returns the kebab-case pattern name.
func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return "invalid"
}

// TileCount returns the number of tiles the pattern consumes.
func (p Pattern) TileCount() int { return len(signatures[p]) }

// Signature returns the sizes the pattern consumes, in tile order.
func (p Pattern) Signature() []Size { return slices.Clone(signatures[p]) }

// ParsePattern parses a pattern name as produced by [Pattern.String].
func ParsePattern(text string) (Pattern, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, p := range allPatterns {
		if patternNames[p] == text {
			return p, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown segment pattern %q", text)
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot encode invalid pattern %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// CountTiles returns the total number of tiles consumed by patterns.
func CountTiles(patterns []Pattern) int {
	n := 0
	for _, p := range patterns {
		n += p.TileCount()
	}
	return n
}
