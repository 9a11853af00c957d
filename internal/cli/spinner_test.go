package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) *Spinner {
	return newSpinnerWithContext(ctx, io.Discard, msg)
}

func TestSpinnerStop(t *testing.T) {
	s := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := quietSpinner(ctx, "Rendering...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(context.Background(), &buf, "Rendering...")
	s.Start()
	s.StopWithError("Render failed")
	if !strings.Contains(buf.String(), "Render failed") {
		t.Errorf("output = %q, want the failure message", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.Stop()
	s.Stop()
}
