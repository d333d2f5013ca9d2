package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// Terminal couples a Backend with key decoding and an idempotent lifecycle
// Not safe for concurrent PollEvent calls; Fini may be called from any goroutine
type Terminal struct {
	backend Backend
	dec     *decoder

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal over the given backend
func New(backend Backend) *Terminal {
	return &Terminal{
		backend: backend,
		dec:     newDecoder(),
	}
}

// Init enters raw mode
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}
	t.initialized = true
	return nil
}

// Fini shows the cursor and restores the saved mode. Safe to call multiple times
func (t *Terminal) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true

	// Reset attributes and show cursor before handing the tty back
	t.backend.Write(csiSGR0)
	t.backend.Write(csiCursorShow)

	return t.backend.Fini()
}

// Size returns the viewport dimensions
func (t *Terminal) Size() (width, height int, err error) {
	return t.backend.Size()
}

// Write implements io.Writer over the backend output
func (t *Terminal) Write(p []byte) (int, error) {
	return t.backend.Write(p)
}

// PollEvent waits at most timeout for the next key event
// Returns false with a nil error when no event arrived in time
func (t *Terminal) PollEvent(timeout time.Duration) (Event, bool, error) {
	if ev, ok := t.dec.next(); ok {
		return ev, true, nil
	}

	data, err := t.backend.Read(timeout)
	if err != nil {
		return Event{Type: EventError, Err: err}, false, fmt.Errorf("%w: read input: %v", ErrIO, err)
	}

	if len(data) == 0 {
		// Emit pending standalone ESC if present
		t.dec.flushEscape()
		ev, ok := t.dec.next()
		return ev, ok, nil
	}

	t.dec.feed(data)

	// A trailing ESC may be the start of a sequence split across reads
	if t.dec.holdingEscape() {
		more, err := t.backend.Read(escapeTimeout)
		if err != nil {
			return Event{Type: EventError, Err: err}, false, fmt.Errorf("%w: read input: %v", ErrIO, err)
		}
		if len(more) > 0 {
			t.dec.feed(more)
		}
		t.dec.flushEscape()
	}

	ev, ok := t.dec.next()
	return ev, ok, nil
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiSGR0)
	w.Write(csiClear)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
