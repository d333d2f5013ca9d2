package terminal

import (
	"fmt"
	"time"
)

// Backend abstracts the terminal device.
// Implementations own raw mode, the size ioctl and the byte streams.
type Backend interface {
	// Lifecycle
	// Init enters raw, unbuffered, non-echoing mode.
	Init() error
	// Fini restores the mode saved by Init. Safe to call multiple times.
	Fini() error

	// Capabilities
	Size() (width, height int, err error)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)

	// Read waits at most timeout for input.
	// Returns nil data and nil error when the timeout elapses without input.
	Read(timeout time.Duration) ([]byte, error)
}

// Backend names accepted by NewBackend
const (
	BackendStdio = "stdio"
	BackendTTY   = "tty"
)

// NewBackend creates the named backend
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", BackendStdio:
		return newStdioBackend(), nil
	case BackendTTY:
		return newTTYBackend()
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrBackend, name)
	}
}
