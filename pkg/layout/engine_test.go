package layout

import (
	"sync"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(mustPack(t, tile.Sample()...), Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestEngineNotPrepared(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.FrameForIndex(0); !errors.Is(err, errors.ErrCodeNotPrepared) {
		t.Errorf("FrameForIndex() error = %v, want NOT_PREPARED", err)
	}
	if _, err := e.FramesIntersecting(Rect{Width: 1, Height: 1}); !errors.Is(err, errors.ErrCodeNotPrepared) {
		t.Errorf("FramesIntersecting() error = %v, want NOT_PREPARED", err)
	}
	if _, err := e.ContentSize(); !errors.Is(err, errors.ErrCodeNotPrepared) {
		t.Errorf("ContentSize() error = %v, want NOT_PREPARED", err)
	}
}

func TestEngineInvalidate(t *testing.T) {
	e := newTestEngine(t)
	if !e.Invalidate(348) {
		t.Error("Invalidate() before first prepare should be true")
	}
	if _, err := e.Prepare(348); err != nil {
		t.Fatal(err)
	}
	if e.Invalidate(348) {
		t.Error("Invalidate(same width) should be false")
	}
	if !e.Invalidate(390) {
		t.Error("Invalidate(new width) should be true")
	}
}

func TestEngineLayoutReusesSnapshot(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.Layout(348)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Layout(348)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Layout(same width) recomputed the snapshot")
	}
	c, err := e.Layout(400)
	if err != nil {
		t.Fatal(err)
	}
	if c == a || c.Width != 400 {
		t.Error("Layout(new width) did not recompute")
	}
}

func TestEngineKeepsPreviousOnError(t *testing.T) {
	tests := []struct {
		name string
		run  func(e *Engine, width float64) (*Snapshot, error)
	}{
		{"Prepare", (*Engine).Prepare},
		{"Layout", (*Engine).Layout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			prev, err := tt.run(e, 348)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := tt.run(e, 10); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Fatalf("%s(10) error = %v, want INVALID_CONFIGURATION", tt.name, err)
			}
			s, err := e.Snapshot()
			if err != nil || s != prev {
				t.Errorf("snapshot after failed %s = %v, %v", tt.name, s, err)
			}
			if !e.Invalidate(10) {
				t.Error("failed width should still invalidate")
			}
		})
	}
}

func TestEngineQueries(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Prepare(348); err != nil {
		t.Fatal(err)
	}
	f, err := e.FrameForIndex(2)
	if err != nil {
		t.Fatal(err)
	}
	if f.Index != 2 {
		t.Errorf("FrameForIndex(2).Index = %d", f.Index)
	}
	n := len(tile.Sample())
	if _, err := e.FrameForIndex(n); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("FrameForIndex(count) error = %v, want OUT_OF_RANGE", err)
	}
	got, err := e.FramesIntersecting(f.Rect)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Index != 2 {
		t.Errorf("FramesIntersecting(frame 2) = %v", indices(got))
	}
}

func TestNewEngineRejectsInvalidInput(t *testing.T) {
	if _, err := NewEngine([]tile.Pattern{tile.Pattern(99)}, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewEngine(invalid pattern) error = %v", err)
	}
	if _, err := NewEngine(nil, Options{SidePadding: -1}); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("NewEngine(negative padding) error = %v", err)
	}
}

func TestEngineConcurrentReadsDuringPrepare(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Prepare(348); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := e.Prepare(float64(348 + 10*w + i%3)); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s, err := e.Snapshot()
				if err != nil {
					t.Error(err)
					return
				}
				got := s.Intersecting(s.Bounds)
				if len(got) != s.Len() {
					t.Errorf("torn snapshot: %d of %d frames", len(got), s.Len())
					return
				}
			}
		}()
	}
	wg.Wait()
}
