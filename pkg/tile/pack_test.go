package tile

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name      string
		sizes     []Size
		want      []Pattern
		remainder []Size
	}{
		{
			name:  "empty",
			sizes: nil,
			want:  nil,
		},
		{
			name:  "one full width",
			sizes: []Size{FullWidth},
			want:  []Pattern{OneFullWidth},
		},
		{
			name:  "two double heights",
			sizes: []Size{DoubleHeight, DoubleHeight},
			want:  []Pattern{TwoDoubleHeights},
		},
		{
			name:  "full width then squares",
			sizes: []Size{FullWidth, Square, Square},
			want:  []Pattern{OneFullWidth, TwoSquares},
		},
		{
			name:  "square then half heights",
			sizes: []Size{Square, HalfHeight, HalfHeight},
			want:  []Pattern{OneSquareAndTwoHalfHeights},
		},
		{
			name:  "half heights then square",
			sizes: []Size{HalfHeight, HalfHeight, Square},
			want:  []Pattern{TwoHalfHeightsAndOneSquare},
		},
		{
			name:  "four half heights",
			sizes: []Size{HalfHeight, HalfHeight, HalfHeight, HalfHeight},
			want:  []Pattern{FourHalfHeights},
		},
		{
			name:  "sample",
			sizes: Sample(),
			want: []Pattern{
				TwoDoubleHeights, OneFullWidth, TwoSquares, OneSquareAndTwoHalfHeights,
				TwoSquares, FourHalfHeights, TwoHalfHeightsAndOneSquare,
			},
		},
		{
			name:      "trailing square",
			sizes:     []Size{FullWidth, Square},
			want:      []Pattern{OneFullWidth},
			remainder: []Size{Square},
		},
		{
			name:      "trailing half heights",
			sizes:     []Size{Square, Square, HalfHeight, HalfHeight, HalfHeight},
			want:      []Pattern{TwoSquares},
			remainder: []Size{HalfHeight, HalfHeight, HalfHeight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pack(tt.sizes)
			if err != nil {
				t.Fatalf("Pack() error = %v", err)
			}
			if !slices.Equal(got.Patterns, tt.want) {
				t.Errorf("Patterns = %v, want %v", got.Patterns, tt.want)
			}
			if !slices.Equal(got.Remainder, tt.remainder) {
				t.Errorf("Remainder = %v, want %v", got.Remainder, tt.remainder)
			}
			if got.TileCount()+len(got.Remainder) != len(tt.sizes) {
				t.Errorf("placed %d + remainder %d != input %d", got.TileCount(), len(got.Remainder), len(tt.sizes))
			}
		})
	}
}

func TestPackUnpackable(t *testing.T) {
	tests := []struct {
		name  string
		sizes []Size
	}{
		{"square then double height", []Size{Square, DoubleHeight}},
		{"double height then square", []Size{DoubleHeight, Square}},
		{"half height then full width", []Size{HalfHeight, FullWidth}},
		{"square half square", []Size{Square, HalfHeight, Square}},
		{"three halves then square", []Size{HalfHeight, HalfHeight, HalfHeight, Square}},
		{"error after valid segments", []Size{FullWidth, Square, Square, Square, FullWidth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.sizes)
			if !errors.Is(err, errors.ErrCodeUnpackable) {
				t.Fatalf("Pack() error = %v, want UNPACKABLE", err)
			}
		})
	}
}

func TestPackInvalidSize(t *testing.T) {
	_, err := Pack([]Size{FullWidth, Size(0)})
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Fatalf("Pack() error = %v, want INVALID_SIZE", err)
	}
}

func TestPackingErr(t *testing.T) {
	complete, _ := Pack([]Size{Square, Square})
	if err := complete.Err(); err != nil {
		t.Errorf("complete packing Err() = %v", err)
	}

	partial, _ := Pack([]Size{Square, Square, DoubleHeight})
	err := partial.Err()
	if !errors.Is(err, errors.ErrCodeIncompleteGroup) {
		t.Fatalf("partial packing Err() = %v, want INCOMPLETE_GROUP", err)
	}
	if partial.Complete() {
		t.Error("Complete() = true for packing with remainder")
	}
}

func TestPackConsumesGeneratedSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		sizes := Generate(rng, 1+rng.IntN(40))
		got, err := Pack(sizes)
		if err != nil {
			t.Fatalf("Pack(%v) error = %v", sizes, err)
		}
		if !got.Complete() {
			t.Fatalf("Pack(%v) left remainder %v", sizes, got.Remainder)
		}
		if got.TileCount() != len(sizes) {
			t.Fatalf("TileCount() = %d, want %d", got.TileCount(), len(sizes))
		}
	}
}

func TestPackDoesNotRetainInput(t *testing.T) {
	sizes := []Size{Square, Square, Square}
	got, _ := Pack(sizes)
	sizes[2] = FullWidth
	if got.Remainder[0] != Square {
		t.Error("Remainder aliases the input slice")
	}
}
