package tile

import (
	"fmt"
	"math/rand/v2"
)

// Tile is one element of the input sequence. Color is an opaque display
// attribute carried through to renderers; layout only reads Size.
type Tile struct {
	Size  Size   `json:"size"`
	Color string `json:"color,omitempty"`
}

// Sizes extracts the size of every tile, preserving order.
func Sizes(tiles []Tile) []Size {
	out := make([]Size, len(tiles))
	for i, t := range tiles {
		out[i] = t.Size
	}
	return out
}

// FromSizes builds uncolored tiles from sizes.
func FromSizes(sizes []Size) []Tile {
	out := make([]Tile, len(sizes))
	for i, s := range sizes {
		out[i] = Tile{Size: s}
	}
	return out
}

// AssignColors returns a copy of tiles where every tile without a color
// receives a random one drawn from a generator seeded with seed.
func AssignColors(tiles []Tile, seed uint64) []Tile {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		if t.Color == "" {
			t.Color = RandomColor(rng)
		}
		out[i] = t
	}
	return out
}

// RandomColor returns a "#rrggbb" color with every channel in the upper
// half of the range so dark text stays readable on it.
func RandomColor(rng *rand.Rand) string {
	ch := func() int { return 0x60 + rng.IntN(0xa0) }
	return fmt.Sprintf("#%02x%02x%02x", ch(), ch(), ch())
}

// Generate returns a size sequence made of n randomly chosen complete
// segments.
func Generate(rng *rand.Rand, n int) []Size {
	var out []Size
	for range n {
		p := allPatterns[rng.IntN(len(allPatterns))]
		out = append(out, signatures[p]...)
	}
	return out
}

// Sample returns the demonstration sequence used when no tile file is
// given: every pattern appears at least once.
func Sample() []Size {
	return []Size{
		DoubleHeight, DoubleHeight,
		FullWidth,
		Square, Square,
		Square, HalfHeight, HalfHeight,
		Square, Square,
		HalfHeight, HalfHeight, HalfHeight, HalfHeight,
		HalfHeight, HalfHeight, Square,
	}
}
