package errors

import "math"

// MaxTiles bounds the number of tiles accepted from untrusted input
// (tile files, API requests).
const MaxTiles = 100_000

// ValidatePadding checks that a side padding is a positive finite number.
func ValidatePadding(p float64) error {
	if !finite(p) || p <= 0 {
		return New(ErrCodeInvalidConfiguration, "side padding must be positive, got %v", p)
	}
	return nil
}

// ValidateSpacing checks that a cell spacing is a positive finite number.
func ValidateSpacing(s float64) error {
	if !finite(s) || s <= 0 {
		return New(ErrCodeInvalidConfiguration, "cell spacing must be positive, got %v", s)
	}
	return nil
}

// ValidateWidth checks that a container width leaves a positive segment
// width once the side padding is removed from both edges.
func ValidateWidth(width, padding float64) error {
	if !finite(width) {
		return New(ErrCodeInvalidConfiguration, "container width must be finite, got %v", width)
	}
	if width <= 2*padding {
		return New(ErrCodeInvalidConfiguration,
			"container width %v must exceed twice the side padding (%v)", width, 2*padding)
	}
	return nil
}

// ValidateRect checks that a query rectangle has finite coordinates and a
// non-negative size.
func ValidateRect(x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if !finite(v) {
			return New(ErrCodeInvalidInput, "rectangle coordinates must be finite")
		}
	}
	if w < 0 || h < 0 {
		return New(ErrCodeInvalidInput, "rectangle size must be non-negative, got %vx%v", w, h)
	}
	return nil
}

// ValidateTileCount rejects empty or oversized tile sequences.
func ValidateTileCount(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidInput, "tile sequence cannot be empty")
	}
	if n > MaxTiles {
		return New(ErrCodeInvalidInput, "too many tiles (max %d), got %d", MaxTiles, n)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
