package input

import "github.com/lixenwraith/rudolf/navigation"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota // Unrecognized key, no-op
	IntentQuit                   // Ctrl+Q
	IntentMove                   // Arrows, Shift+Arrows
)

// Magnitude selects single-cell or accelerated movement
type Magnitude uint8

const (
	MagnitudeUnit        Magnitude = iota // Arrow
	MagnitudeAccelerated                  // Shift+Arrow, a tenth of the viewport
)

// Intent is the classified meaning of one key event
type Intent struct {
	Type      IntentType
	Direction navigation.Direction // IntentMove only
	Magnitude Magnitude            // IntentMove only
}

// Quit is the terminate intent
var Quit = Intent{Type: IntentQuit}

// Move returns a unit movement intent
func Move(dir navigation.Direction) Intent {
	return Intent{Type: IntentMove, Direction: dir, Magnitude: MagnitudeUnit}
}

// Jump returns an accelerated movement intent
func Jump(dir navigation.Direction) Intent {
	return Intent{Type: IntentMove, Direction: dir, Magnitude: MagnitudeAccelerated}
}
