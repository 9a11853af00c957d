package layout

import "math"

// Rect is an axis-aligned rectangle. Y grows downward.
// All coordinates are in user units (points on screen, pixels in SVG).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX, minY := math.Min(r.MinX(), o.MinX()), math.Min(r.MinY(), o.MinY())
	maxX, maxY := math.Max(r.MaxX(), o.MaxX()), math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersects reports whether r and o share interior area. Rectangles that
// only touch along an edge do not intersect, and an empty rectangle
// intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// SplitX divides the rectangle into left and right halves. The left half
// gets the integral part of half the width.
func (r Rect) SplitX() (left, right Rect) {
	w := math.Floor(r.Width / 2)
	left = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, right
}

// SplitY divides the rectangle into top and bottom halves. The top half
// gets the integral part of half the height.
func (r Rect) SplitY() (top, bottom Rect) {
	h := math.Floor(r.Height / 2)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	bottom = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
	return top, bottom
}
