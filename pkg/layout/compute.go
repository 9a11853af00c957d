package layout

import (
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

const (
	// DefaultSidePadding is the default padding around the grid and around
	// each tile inside its cell.
	DefaultSidePadding = 16.0

	// DefaultCellSpacing is the default spacing knob. It is carried through
	// snapshots and documents but does not take part in frame math.
	DefaultCellSpacing = 8.0

	// segmentGap separates consecutive segments vertically.
	segmentGap = 1.0
)

// Options configures frame computation.
type Options struct {
	SidePadding float64 `json:"side_padding" toml:"padding"`
	CellSpacing float64 `json:"cell_spacing" toml:"spacing"`
}

// DefaultOptions returns the default padding and spacing.
func DefaultOptions() Options {
	return Options{SidePadding: DefaultSidePadding, CellSpacing: DefaultCellSpacing}
}

// WithDefaults fills zero fields with their defaults.
func (o Options) WithDefaults() Options {
	if o.SidePadding == 0 {
		o.SidePadding = DefaultSidePadding
	}
	if o.CellSpacing == 0 {
		o.CellSpacing = DefaultCellSpacing
	}
	return o
}

// Validate checks that padding and spacing are positive.
func (o Options) Validate() error {
	if err := errors.ValidatePadding(o.SidePadding); err != nil {
		return err
	}
	return errors.ValidateSpacing(o.CellSpacing)
}

// Frame is the on-screen rectangle of one tile.
type Frame struct {
	// Index is the tile's position in the input sequence.
	Index int `json:"index"`
	// Segment is the index of the segment that owns the tile.
	Segment int `json:"segment"`
	Rect
}

// Segment is one row of the grid.
type Segment struct {
	Pattern tile.Pattern `json:"pattern"`
	// Rect is the union of the segment's cells, before padding inset.
	Rect Rect `json:"rect"`
	// First is the index of the segment's first frame; Count is how many
	// frames it owns.
	First int `json:"first"`
	Count int `json:"count"`
}

// Frames returns the segment's slice of frames within s.
func (seg Segment) Frames(s *Snapshot) []Frame {
	return s.Frames[seg.First : seg.First+seg.Count]
}

// Compute lays out patterns in a container of the given width.
//
// The result is deterministic: identical inputs produce identical
// snapshots. Compute fails with INVALID_CONFIGURATION when the options are
// invalid, when width does not exceed twice the side padding, or when a
// cell is too small to hold its padding inset.
func Compute(width float64, patterns []tile.Pattern, opts Options) (*Snapshot, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pad := opts.SidePadding
	if err := errors.ValidateWidth(width, pad); err != nil {
		return nil, err
	}

	segmentWidth := width - 2*pad
	segmentHeight := segmentWidth / 2

	snap := &Snapshot{
		Width:    width,
		Options:  opts,
		Frames:   make([]Frame, 0, tile.CountTiles(patterns)),
		Segments: make([]Segment, 0, len(patterns)),
		Bounds:   Rect{Width: width},
	}

	var cursor float64
	for i, p := range patterns {
		if !p.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "segment %d has invalid pattern %d", i, uint8(p))
		}

		y := 0.0
		if i > 0 {
			y = cursor + segmentGap
		}
		cells := subdivide(p, Rect{X: pad, Y: y, Width: segmentWidth, Height: segmentHeight})

		seg := Segment{Pattern: p, Rect: cells[0], First: len(snap.Frames), Count: len(cells)}
		for _, c := range cells {
			f := c.Inset(pad)
			if f.Empty() {
				return nil, errors.New(errors.ErrCodeInvalidConfiguration,
					"container width %v is too narrow: %s cell %vx%v cannot hold a %v padding inset",
					width, p, c.Width, c.Height, pad)
			}
			snap.Frames = append(snap.Frames, Frame{Index: len(snap.Frames), Segment: i, Rect: f})
			seg.Rect = seg.Rect.Union(c)
		}
		snap.Segments = append(snap.Segments, seg)
		snap.Bounds = snap.Bounds.Union(seg.Rect)
		cursor = seg.Rect.MaxY()
	}
	return snap, nil
}

// subdivide splits a segment rectangle into the cells of pattern p, in
// tile order.
func subdivide(p tile.Pattern, r Rect) []Rect {
	switch p {
	case tile.OneFullWidth:
		return []Rect{r}
	case tile.TwoDoubleHeights:
		r.Height *= 2
		left, right := r.SplitX()
		return []Rect{left, right}
	case tile.TwoSquares:
		left, right := r.SplitX()
		return []Rect{left, right}
	case tile.TwoHalfHeightsAndOneSquare:
		left, right := r.SplitX()
		top, bottom := left.SplitY()
		return []Rect{top, bottom, right}
	case tile.OneSquareAndTwoHalfHeights:
		left, right := r.SplitX()
		top, bottom := right.SplitY()
		return []Rect{left, top, bottom}
	case tile.FourHalfHeights:
		left, right := r.SplitX()
		lt, lb := left.SplitY()
		rt, rb := right.SplitY()
		return []Rect{lt, lb, rt, rb}
	}
	return nil
}
