// @lixen: #focus{sys[render,frame]}
package render

import (
	"io"
	"unicode/utf8"

	"github.com/lixenwraith/rudolf/constant"
	"github.com/lixenwraith/rudolf/navigation"
	"github.com/lixenwraith/rudolf/terminal"
)

// Options selects banner text and the empty-row marker
type Options struct {
	Welcome string
	Version string
	Marker  string
}

// DefaultOptions returns the stock banner
func DefaultOptions() Options {
	return Options{
		Welcome: constant.WelcomeMessage,
		Version: "v" + constant.Version,
		Marker:  constant.EmptyRowMarker,
	}
}

// Output composes full-screen frames
// It exclusively owns its frame buffer and cursor controller
type Output struct {
	vp       navigation.Viewport
	opts     Options
	contents *FrameBuffer
	cursor   *navigation.Controller
}

// NewOutput creates a renderer for a fixed viewport writing frames to out
func NewOutput(out io.Writer, vp navigation.Viewport, opts Options) (*Output, error) {
	cursor, err := navigation.NewController(vp)
	if err != nil {
		return nil, err
	}
	if opts.Marker == "" {
		opts.Marker = constant.EmptyRowMarker
	}
	return &Output{
		vp:       vp,
		opts:     opts,
		contents: NewFrameBuffer(out),
		cursor:   cursor,
	}, nil
}

// Cursor returns the current cursor position
func (o *Output) Cursor() navigation.Position { return o.cursor.Position() }

// Viewport returns the fixed viewport
func (o *Output) Viewport() navigation.Viewport { return o.vp }

// MoveCursor steps the cursor one cell
func (o *Output) MoveCursor(dir navigation.Direction) bool {
	return o.cursor.Move(dir)
}

// JumpCursor steps the cursor a tenth of the viewport
func (o *Output) JumpCursor(dir navigation.Direction) bool {
	return o.cursor.Jump(dir)
}

// RenderFrame composes a full frame and flushes it in one write
func (o *Output) RenderFrame() error {
	// Drop anything left by a frame that failed to flush
	o.contents.Reset()

	terminal.WriteCursorHide(o.contents)
	terminal.WriteCursorPos(o.contents, 0, 0)

	o.drawRows()

	pos := o.cursor.Position()
	terminal.WriteCursorPos(o.contents, int(pos.X), int(pos.Y))
	terminal.WriteCursorShow(o.contents)

	return o.contents.Flush()
}

// ClearScreen erases the display and homes the cursor
func (o *Output) ClearScreen() error {
	o.contents.Reset()
	terminal.WriteClearScreen(o.contents)
	return o.contents.Flush()
}

func (o *Output) drawRows() {
	rows := o.vp.Rows
	for i := uint(0); i < rows; i++ {
		switch i {
		case rows / 4:
			o.DrawMessage(o.opts.Welcome)
		case rows/4 + 1:
			o.DrawMessage(o.opts.Version)
		default:
			o.contents.Append(o.opts.Marker)
		}

		terminal.WriteClearLine(o.contents)

		if i < rows-1 {
			terminal.WriteLineBreak(o.contents)
		}
	}
}

// DrawMessage appends msg centered in the viewport width, truncated to fit
// The marker takes the first padding column; odd leftover space lands after the message
func (o *Output) DrawMessage(msg string) {
	cols := o.vp.Columns
	width := uint(utf8.RuneCountInString(msg))
	if width > cols {
		msg = string([]rune(msg)[:cols])
		width = cols
	}

	padding := (cols - width) / 2
	if padding > 0 {
		o.contents.Append(o.opts.Marker)
		padding--
	}
	for ; padding > 0; padding-- {
		o.contents.WriteByte(' ')
	}

	o.contents.Append(msg)
}
