package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StartStop(t *testing.T) {
	out := &lockedBuffer{}
	s := NewSpinner(out, "Working")

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Working") {
		t.Errorf("expected suffix in output, got %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Errorf("expected line clear at the end, got %q", got)
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	out := &lockedBuffer{}
	NewSpinner(out, "idle").Stop()
	if out.String() != "" {
		t.Errorf("expected no output, got %q", out.String())
	}
}
