package layout

import (
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Snapshot is the computed layout for one container width.
// A snapshot is never modified after [Compute] returns it; callers must
// treat its slices as read-only.
type Snapshot struct {
	Width    float64
	Options  Options
	Frames   []Frame
	Segments []Segment
	// Bounds encloses every segment and spans the full container width.
	Bounds Rect
}

// Len returns the number of frames.
func (s *Snapshot) Len() int { return len(s.Frames) }

// ContentSize returns the scrollable content size.
func (s *Snapshot) ContentSize() Size {
	return Size{Width: s.Bounds.Width, Height: s.Bounds.Height}
}

// Frame returns the frame of tile i.
func (s *Snapshot) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(s.Frames) {
		return Frame{}, errors.New(errors.ErrCodeOutOfRange, "tile index %d out of range [0, %d)", i, len(s.Frames))
	}
	return s.Frames[i], nil
}

// Intersecting returns every frame that intersects q, in tile order.
func (s *Snapshot) Intersecting(q Rect) []Frame {
	if q.Empty() {
		return nil
	}
	pivot := s.findSegment(q)
	if pivot < 0 {
		return nil
	}

	lo, hi := pivot, pivot
	for lo > 0 && s.Segments[lo-1].Rect.MaxY() > q.MinY() {
		lo--
	}
	for hi+1 < len(s.Segments) && s.Segments[hi+1].Rect.MinY() < q.MaxY() {
		hi++
	}

	var out []Frame
	for _, seg := range s.Segments[lo : hi+1] {
		for _, f := range seg.Frames(s) {
			if f.Intersects(q) {
				out = append(out, f)
			}
		}
	}
	return out
}

// findSegment returns the index of any segment whose vertical extent
// overlaps q, or -1. Segments are sorted by y and never overlap.
func (s *Snapshot) findSegment(q Rect) int {
	lo, hi := 0, len(s.Segments)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		r := s.Segments[mid].Rect
		switch {
		case r.MaxY() <= q.MinY():
			lo = mid + 1
		case r.MinY() >= q.MaxY():
			hi = mid - 1
		default:
			return mid
		}
	}
	return -1
}
