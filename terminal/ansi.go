// @focus: #terminal { ansi }
package terminal

import "io"

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi       = []byte("\x1b[")
	csiClear  = []byte("\x1b[2J\x1b[H")
	csiEraseL = []byte("\x1b[K") // Erase from cursor to end of line
	csiRIS    = []byte("\x1bc")  // Reset to Initial State (emergency)
	csiSGR0   = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	crlf = []byte("\r\n")
)

// Sink is the append target for sequence writers (a frame buffer or bufio.Writer)
type Sink interface {
	io.Writer
	io.ByteWriter
}

// WriteCursorHide writes the cursor-hide directive
func WriteCursorHide(w Sink) { w.Write(csiCursorHide) }

// WriteCursorShow writes the cursor-show directive
func WriteCursorShow(w Sink) { w.Write(csiCursorShow) }

// WriteClearLine writes the clear-to-end-of-line directive
func WriteClearLine(w Sink) { w.Write(csiEraseL) }

// WriteClearScreen erases the whole screen and homes the cursor
func WriteClearScreen(w Sink) { w.Write(csiClear) }

// WriteLineBreak moves to the start of the next line; raw mode disables output CR translation
func WriteLineBreak(w Sink) { w.Write(crlf) }

// WriteCursorPos writes cursor positioning sequence (0-indexed input)
func WriteCursorPos(w Sink, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w Sink, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}
