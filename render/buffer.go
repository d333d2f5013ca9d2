// @lixen: #focus{sys[render,output]}
package render

import (
	"fmt"
	"io"

	"github.com/lixenwraith/rudolf/terminal"
)

// FrameBuffer accumulates one frame of text and escape sequences
// and delivers it to the device in a single write
type FrameBuffer struct {
	out io.Writer
	buf []byte
}

// NewFrameBuffer creates an empty buffer writing to out
func NewFrameBuffer(out io.Writer) *FrameBuffer {
	return &FrameBuffer{
		out: out,
		buf: make([]byte, 0, 8192),
	}
}

// Append adds raw text; nothing reaches the device until Flush
func (b *FrameBuffer) Append(s string) {
	b.buf = append(b.buf, s...)
}

// Write implements io.Writer, never fails
func (b *FrameBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter, never fails
func (b *FrameBuffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Len returns the number of staged bytes
func (b *FrameBuffer) Len() int { return len(b.buf) }

// String returns the staged content
func (b *FrameBuffer) String() string { return string(b.buf) }

// Reset discards staged content without writing it
func (b *FrameBuffer) Reset() { b.buf = b.buf[:0] }

// Flush writes the staged content in one call and empties the buffer
// On error the content is kept and the frame counts as not delivered
func (b *FrameBuffer) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	n, err := b.out.Write(b.buf)
	if err == nil && n < len(b.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: flush frame (%d of %d bytes): %v", terminal.ErrIO, n, len(b.buf), err)
	}
	b.buf = b.buf[:0]
	return nil
}

var _ terminal.Sink = (*FrameBuffer)(nil)
