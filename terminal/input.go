package terminal

import "unicode/utf8"

// decoder turns a raw byte stream into key events
// Incomplete escape and UTF-8 sequences are held until the next feed
type decoder struct {
	// Persistent buffer for stream assembly, not fixed size to avoid corrupting partial UTF-8 at boundary
	buf     []byte
	pending []Event
}

func newDecoder() *decoder {
	return &decoder{
		buf:     make([]byte, 0, 256),
		pending: make([]Event, 0, 16),
	}
}

// feed appends data and decodes every complete sequence
func (d *decoder) feed(data []byte) {
	d.buf = append(d.buf, data...)

	consumed := d.parse(d.buf)

	// Compact buffer
	if consumed > 0 {
		if consumed >= len(d.buf) {
			d.buf = d.buf[:0]
		} else {
			copy(d.buf, d.buf[consumed:])
			d.buf = d.buf[:len(d.buf)-consumed]
		}
	}
}

// flushEscape emits a held lone ESC once no continuation arrived in time
func (d *decoder) flushEscape() {
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		d.emit(Event{Type: EventKey, Key: KeyEscape})
		d.buf = d.buf[:0]
	}
}

// holdingEscape reports whether an ESC prefix is waiting for more bytes
func (d *decoder) holdingEscape() bool {
	return len(d.buf) > 0 && d.buf[0] == 0x1b
}

// next pops the oldest decoded event
func (d *decoder) next() (Event, bool) {
	if len(d.pending) == 0 {
		return Event{}, false
	}
	ev := d.pending[0]
	copy(d.pending, d.pending[1:])
	d.pending = d.pending[:len(d.pending)-1]
	return ev, true
}

func (d *decoder) emit(ev Event) {
	d.pending = append(d.pending, ev)
}

// parse decodes events and returns bytes consumed (stops on incomplete sequence)
func (d *decoder) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}

			// Swallow unknown but well-formed sequences
			if ev.Key != KeyNone {
				d.emit(ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				d.emit(ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			d.emit(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError {
			d.emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
		}
		i += size
	}
	return i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by a non-ASCII byte: standalone ESC, the rest is decoded separately
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI parses a CSI sequence, consuming unknown ones to prevent garbage
func parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	const maxScan = 16
	end := 2
	for end < len(data) && end < maxScan {
		b := data[end]
		end++
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if key, mod, ok := lookupCSI(data[2:end]); ok {
				return end, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			return end, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer only
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}

	if end >= maxScan {
		// Overlong, drop the introducer only
		return 2, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{} // Incomplete
}

// parseSS3 parses SS3 sequence, returns length even for unknown sequences
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR (Enter)
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: ctrlKey(b)}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
