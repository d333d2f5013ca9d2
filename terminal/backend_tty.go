//go:build unix

package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ttyBackend drives /dev/tty through tcell's Tty, leaving stdin/stdout free for redirection
type ttyBackend struct {
	tty tcell.Tty

	dataCh chan []byte
	errCh  chan error
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	started bool
}

func newTTYBackend() (Backend, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/tty: %v", ErrBackend, err)
	}
	return newTTYBackendFrom(tty), nil
}

func newTTYBackendFrom(tty tcell.Tty) *ttyBackend {
	return &ttyBackend{
		tty:    tty,
		dataCh: make(chan []byte, 16),
		errCh:  make(chan error, 1),
	}
}

func (b *ttyBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}
	if err := b.tty.Start(); err != nil {
		return fmt.Errorf("%w: start tty: %v", ErrIO, err)
	}

	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	b.started = true
	go b.readLoop(b.stopCh, b.doneCh)
	return nil
}

func (b *ttyBackend) Fini() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil
	}
	b.started = false

	close(b.stopCh)
	// Drain wakes a reader blocked in Read before Stop restores the mode
	_ = b.tty.Drain()
	err := b.tty.Stop()
	select {
	case <-b.doneCh:
	case <-time.After(100 * time.Millisecond):
		// Reader stuck on blocking read, proceed anyway
	}
	if err != nil {
		return fmt.Errorf("%w: stop tty: %v", ErrIO, err)
	}
	return nil
}

func (b *ttyBackend) Size() (int, int, error) {
	ws, err := b.tty.WindowSize()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrSize, err)
	}
	if ws.Width <= 0 || ws.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: reported %dx%d", ErrSize, ws.Width, ws.Height)
	}
	return ws.Width, ws.Height, nil
}

func (b *ttyBackend) Write(p []byte) (int, error) {
	return b.tty.Write(p)
}

func (b *ttyBackend) Read(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data := <-b.dataCh:
		return data, nil
	case err := <-b.errCh:
		return nil, err
	case <-timer.C:
		return nil, nil
	}
}

// readLoop forwards tty reads until stopped
func (b *ttyBackend) readLoop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	buf := make([]byte, 256)
	for {
		n, err := b.tty.Read(buf)

		select {
		case <-stopCh:
			return
		default:
		}

		if err != nil {
			select {
			case b.errCh <- err:
			default:
			}
			return
		}
		if n == 0 {
			continue
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case b.dataCh <- data:
		case <-stopCh:
			return
		}
	}
}
