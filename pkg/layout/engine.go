package layout

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Engine owns the layout of a fixed pattern sequence and recomputes it when
// the container width changes.
//
// Prepare is the only mutator and is serialized internally. All read
// methods load the current snapshot atomically and are safe to call from
// any goroutine, including while a Prepare is running.
type Engine struct {
	patterns []tile.Pattern
	opts     Options

	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// NewEngine creates an engine for patterns. Zero option fields take their
// defaults.
func NewEngine(patterns []tile.Pattern, opts Options) (*Engine, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for i, p := range patterns {
		if !p.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "segment %d has invalid pattern %d", i, uint8(p))
		}
	}
	return &Engine{patterns: slices.Clone(patterns), opts: opts}, nil
}

// Patterns returns a copy of the engine's pattern sequence.
func (e *Engine) Patterns() []tile.Pattern { return slices.Clone(e.patterns) }

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }

// Invalidate reports whether width differs from the width of the current
// snapshot. It is always true before the first Prepare.
func (e *Engine) Invalidate(width float64) bool {
	s := e.snap.Load()
	return s == nil || s.Width != width
}

// Prepare recomputes the layout for width and publishes it. On error the
// previous snapshot stays current.
func (e *Engine) Prepare(width float64) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prepareLocked(width)
}

// Layout returns the current snapshot, preparing first if width
// invalidates it.
func (e *Engine) Layout(width float64) (*Snapshot, error) {
	if !e.Invalidate(width) {
		return e.snap.Load(), nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if s := e.snap.Load(); s != nil && s.Width == width {
		return s, nil
	}
	return e.prepareLocked(width)
}

// prepareLocked computes and publishes a snapshot. e.mu must be held.
func (e *Engine) prepareLocked(width float64) (*Snapshot, error) {
	s, err := Compute(width, e.patterns, e.opts)
	if err != nil {
		return nil, err
	}
	e.snap.Store(s)
	return s, nil
}

// Snapshot returns the current snapshot or a NOT_PREPARED error.
func (e *Engine) Snapshot() (*Snapshot, error) {
	s := e.snap.Load()
	if s == nil {
		return nil, errors.New(errors.ErrCodeNotPrepared, "layout has not been prepared")
	}
	return s, nil
}

// ContentSize returns the content size of the current snapshot.
func (e *Engine) ContentSize() (Size, error) {
	s, err := e.Snapshot()
	if err != nil {
		return Size{}, err
	}
	return s.ContentSize(), nil
}

// FrameForIndex returns the frame of tile i in the current snapshot.
func (e *Engine) FrameForIndex(i int) (Frame, error) {
	s, err := e.Snapshot()
	if err != nil {
		return Frame{}, err
	}
	return s.Frame(i)
}

// FramesIntersecting returns the frames of the current snapshot that
// intersect q, in tile order.
func (e *Engine) FramesIntersecting(q Rect) ([]Frame, error) {
	s, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Intersecting(q), nil
}
