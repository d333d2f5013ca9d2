//go:build !unix

package terminal

import (
	"fmt"
	"runtime"
	"time"
)

// unsupportedBackend fails every operation on platforms without termios
type unsupportedBackend struct{}

func newStdioBackend() Backend { return unsupportedBackend{} }

func newTTYBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: tty backend unsupported on %s", ErrBackend, runtime.GOOS)
}

func (unsupportedBackend) Init() error {
	return fmt.Errorf("%w: raw mode unsupported on %s", ErrBackend, runtime.GOOS)
}
func (unsupportedBackend) Fini() error { return nil }
func (unsupportedBackend) Size() (int, int, error) {
	return 0, 0, fmt.Errorf("%w: unsupported on %s", ErrSize, runtime.GOOS)
}
func (unsupportedBackend) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("%w: unsupported on %s", ErrIO, runtime.GOOS)
}
func (unsupportedBackend) Read(time.Duration) ([]byte, error) {
	return nil, fmt.Errorf("%w: unsupported on %s", ErrIO, runtime.GOOS)
}

func resetTerminalMode() {}
