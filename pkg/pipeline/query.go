package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// FrameSource answers frame lookups. *layout.Engine implements it; wrap a
// bare snapshot with SnapshotSource.
type FrameSource interface {
	FrameForIndex(i int) (layout.Frame, error)
	FramesIntersecting(q layout.Rect) ([]layout.Frame, error)
}

type snapshotSource struct{ s *layout.Snapshot }

func (s snapshotSource) FrameForIndex(i int) (layout.Frame, error) { return s.s.Frame(i) }

func (s snapshotSource) FramesIntersecting(q layout.Rect) ([]layout.Frame, error) {
	return s.s.Intersecting(q), nil
}

// SnapshotSource adapts a snapshot to FrameSource.
func SnapshotSource(s *layout.Snapshot) FrameSource { return snapshotSource{s} }

// QueryIndex returns the frame of tile i and reports the lookup to the
// query hooks.
func QueryIndex(ctx context.Context, src FrameSource, i int) (layout.Frame, error) {
	start := time.Now()
	f, err := src.FrameForIndex(i)
	n := 1
	if err != nil {
		n = 0
	}
	observability.Query().OnQuery(ctx, "index", n, time.Since(start))
	return f, err
}

// QueryRect validates q and returns the frames intersecting it.
func QueryRect(ctx context.Context, src FrameSource, q layout.Rect) ([]layout.Frame, error) {
	if err := errors.ValidateRect(q.X, q.Y, q.Width, q.Height); err != nil {
		return nil, err
	}
	start := time.Now()
	frames, err := src.FramesIntersecting(q)
	observability.Query().OnQuery(ctx, "rect", len(frames), time.Since(start))
	return frames, err
}
