package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a one-line status on a writer (usually stderr) while a
// CLI command waits on a model. Frames match the TUI spinner.
type Spinner struct {
	out    io.Writer
	frames spinner.Spinner
	suffix string

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a stopped spinner.
func NewSpinner(out io.Writer, suffix string) *Spinner {
	return &Spinner{out: out, frames: spinner.Dot, suffix: suffix}
}

// Start begins drawing. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()
	for i := 0; ; i++ {
		frame := s.frames.Frames[i%len(s.frames.Frames)]
		fmt.Fprintf(s.out, "\r%s %s", StylePrimary.Render(frame), s.suffix)
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts drawing and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	fmt.Fprint(s.out, "\r\033[K")
}
