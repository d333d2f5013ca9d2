package input

import "github.com/lixenwraith/rudolf/navigation"

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve config action strings to bindings
var actionRegistry = map[string]Intent{
	// Unbind sentinel
	"none": {},

	// System
	"quit": Quit,

	// Unit motions
	"move_up":    Move(navigation.DirUp),
	"move_down":  Move(navigation.DirDown),
	"move_left":  Move(navigation.DirLeft),
	"move_right": Move(navigation.DirRight),

	// Accelerated motions
	"jump_up":    Jump(navigation.DirUp),
	"jump_down":  Jump(navigation.DirDown),
	"jump_left":  Jump(navigation.DirLeft),
	"jump_right": Jump(navigation.DirRight),
}

// ActionByName resolves an action name to its intent
func ActionByName(name string) (Intent, bool) {
	in, ok := actionRegistry[name]
	return in, ok
}
