package tile

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// rules holds the patterns tested for each buffer length, in priority order.
var rules = [MaxGroup + 1][]Pattern{
	1: {OneFullWidth},
	2: {TwoSquares, TwoDoubleHeights},
	3: {OneSquareAndTwoHalfHeights, TwoHalfHeightsAndOneSquare},
	4: {FourHalfHeights},
}

// Packing is the result of [Pack].
type Packing struct {
	// Patterns holds one entry per completed segment, in input order.
	Patterns []Pattern `json:"patterns"`

	// Remainder holds the trailing tiles that started a valid group but
	// reached the end of the input before completing it.
	Remainder []Size `json:"remainder,omitempty"`
}

// TileCount returns the number of tiles placed by the packing's patterns.
func (p Packing) TileCount() int { return CountTiles(p.Patterns) }

// Complete reports whether every input tile was placed.
func (p Packing) Complete() bool { return len(p.Remainder) == 0 }

// Err returns an INCOMPLETE_GROUP error when the packing has a remainder.
func (p Packing) Err() error {
	if p.Complete() {
		return nil
	}
	return errors.New(errors.ErrCodeIncompleteGroup,
		"%d trailing tile(s) %s starting at tile %d do not complete a segment",
		len(p.Remainder), formatSizes(p.Remainder), p.TileCount())
}

// Pack groups sizes into segment patterns.
//
// Each size is appended to a pending buffer which is then matched against
// the patterns of the same length; the first match is emitted and the
// buffer cleared. If the buffer stops being a prefix of every pattern it can
// never match and Pack fails with UNPACKABLE. Tiles still buffered at the
// end are returned in [Packing.Remainder].
func Pack(sizes []Size) (Packing, error) {
	var (
		out   Packing
		buf   = make([]Size, 0, MaxGroup)
		start int
	)
	for i, s := range sizes {
		if !s.Valid() {
			return Packing{}, errors.New(errors.ErrCodeInvalidSize, "tile %d has invalid size %d", i, uint8(s))
		}
		if len(buf) == 0 {
			start = i
		}
		buf = append(buf, s)

		if p, ok := match(buf); ok {
			out.Patterns = append(out.Patterns, p)
			buf = buf[:0]
			continue
		}
		if !viable(buf) {
			return Packing{}, errors.New(errors.ErrCodeUnpackable,
				"tile %d (%s) cannot complete the group %s starting at tile %d", i, s, formatSizes(buf), start)
		}
	}
	if len(buf) > 0 {
		out.Remainder = slices.Clone(buf)
	}
	return out, nil
}

func match(buf []Size) (Pattern, bool) {
	if len(buf) >= len(rules) {
		return 0, false
	}
	for _, p := range rules[len(buf)] {
		if slices.Equal(signatures[p], buf) {
			return p, true
		}
	}
	return 0, false
}

// viable reports whether buf is a proper prefix of at least one pattern.
func viable(buf []Size) bool {
	for _, p := range allPatterns {
		sig := signatures[p]
		if len(sig) > len(buf) && slices.Equal(sig[:len(buf)], buf) {
			return true
		}
	}
	return false
}
