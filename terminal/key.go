package terminal

// Key represents a parsed input key
type Key uint16

// Key constants
const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH // Not produced by the decoder, 0x08 decodes as Backspace
	KeyCtrlI // Not produced by the decoder, 0x09 decodes as Tab
	KeyCtrlJ // Not produced by the decoder, 0x0a decodes as Enter
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM // Not produced by the decoder, 0x0d decodes as Enter
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// KeyKind distinguishes press, auto-repeat and release reports
type KeyKind uint8

const (
	KindPress KeyKind = iota
	KindRepeat
	KindRelease
)

// KeyState carries lock and keypad flags reported alongside a key
type KeyState uint8

const (
	StateNone     KeyState = 0
	StateKeypad   KeyState = 1 << 0
	StateCapsLock KeyState = 1 << 1
	StateNumLock  KeyState = 1 << 2
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventError
	EventClosed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Kind      KeyKind
	State     KeyState
	Err       error // For EventError
}

// ctrlKey maps a control byte 0x01..0x1a to its Ctrl+letter key
func ctrlKey(b byte) Key {
	return KeyCtrlA + Key(b-0x01)
}
