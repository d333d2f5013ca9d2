//go:build unix

package terminal

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type stdioBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	buf []byte
}

func newStdioBackend() Backend {
	return &stdioBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
		buf:   make([]byte, 256),
	}
}

func (b *stdioBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("%w: stdin is not a terminal", ErrBackend)
	}
	if b.oldTerm != nil {
		return nil
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("%w: enable raw mode: %v", ErrIO, err)
	}
	b.oldTerm = old
	return nil
}

func (b *stdioBackend) Fini() error {
	if b.oldTerm == nil {
		return nil
	}
	old := b.oldTerm
	b.oldTerm = nil
	if err := term.Restore(b.inFd, old); err != nil {
		return fmt.Errorf("%w: restore mode: %v", ErrIO, err)
	}
	return nil
}

// Size prefers the ioctl on stdout and falls back to x/term on stdin
func (b *stdioBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return int(ws.Col), int(ws.Row), nil
	}
	w, h, terr := term.GetSize(b.inFd)
	if terr != nil {
		if err == nil {
			err = terr
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrSize, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: reported %dx%d", ErrSize, w, h)
	}
	return w, h, nil
}

func (b *stdioBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read polls stdin once with the given timeout
func (b *stdioBackend) Read(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			return nil, nil
		}

		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, int(remaining/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			return nil, nil // Timeout
		}

		rn, err := unix.Read(b.inFd, b.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}

		if rn == 0 {
			return nil, fmt.Errorf("%w: input closed", ErrIO)
		}

		// Return copy of data
		ret := make([]byte, rn)
		copy(ret, b.buf[:rn])
		return ret, nil
	}
}
