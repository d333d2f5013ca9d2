package input

import "github.com/lixenwraith/rudolf/navigation"

// State of the dispatch loop
type State uint8

const (
	StateRunning State = iota
	StateTerminated
)

// String returns the state name
func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "running"
}

// Outcome reports what a dispatched intent did
type Outcome uint8

const (
	OutcomeIgnored Outcome = iota // IntentNone, or any intent after termination
	OutcomeMoved
	OutcomeBlocked // Move at a viewport edge, or a zero accelerated step
	OutcomeQuit
)

// Mover is the cursor surface the machine drives
type Mover interface {
	MoveCursor(dir navigation.Direction) bool
	JumpCursor(dir navigation.Direction) bool
}

// Machine is the two-state dispatch machine
// Maps each Intent to at most one Mover call
type Machine struct {
	state State
	mover Mover
}

// NewMachine creates a running machine driving mover
func NewMachine(mover Mover) *Machine {
	return &Machine{mover: mover}
}

// State returns the current state
func (m *Machine) State() State { return m.state }

// Dispatch applies one intent
func (m *Machine) Dispatch(in Intent) Outcome {
	if m.state == StateTerminated {
		return OutcomeIgnored
	}

	switch in.Type {
	case IntentQuit:
		m.state = StateTerminated
		return OutcomeQuit

	case IntentMove:
		var moved bool
		if in.Magnitude == MagnitudeAccelerated {
			moved = m.mover.JumpCursor(in.Direction)
		} else {
			moved = m.mover.MoveCursor(in.Direction)
		}
		if moved {
			return OutcomeMoved
		}
		return OutcomeBlocked
	}

	return OutcomeIgnored
}
