package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
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

func TestSpinner_StartStopRestart(t *testing.T) {
	out := &lockedBuffer{}
	s := NewSpinner(out, "Loading rolls")
	s.interval = time.Millisecond

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Loading rolls") {
		t.Fatalf("spinner output missing label: %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Fatalf("spinner did not clear its line: %q", got)
	}

	s.Start()
	s.Stop()
}
