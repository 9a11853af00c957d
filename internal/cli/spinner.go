package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line progress indicator until Stop is called or
// the parent context is cancelled.
type Spinner struct {
	message string
	out     io.Writer
	parent  context.Context

	mu       sync.Mutex
	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
}

func newSpinnerWithContext(ctx context.Context, out io.Writer, message string) *Spinner {
	return &Spinner{
		message:  message,
		out:      out,
		parent:   ctx,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start runs the animation in a background goroutine.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.parent.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

// Stop ends the animation and clears the line. Later calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.finished
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}

// StopWithError stops the spinner and reports message on the same writer.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	status{w: s.out}.fail("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
