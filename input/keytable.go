package input

import (
	"github.com/lixenwraith/rudolf/navigation"
	"github.com/lixenwraith/rudolf/terminal"
)

// Binding identifies a key combination as the decoder reports it
// Rune is set only for terminal.KeyRune
type Binding struct {
	Key  terminal.Key
	Rune rune
	Mod  terminal.Modifier
}

// Keymap maps key combinations to intents
type Keymap struct {
	bindings map[Binding]Intent
}

// DefaultKeymap returns the stock bindings:
// arrows move one cell, Shift+arrows jump, Ctrl+Q quits
func DefaultKeymap() *Keymap {
	return &Keymap{
		bindings: map[Binding]Intent{
			{Key: terminal.KeyCtrlQ}: Quit,

			{Key: terminal.KeyUp}:    Move(navigation.DirUp),
			{Key: terminal.KeyDown}:  Move(navigation.DirDown),
			{Key: terminal.KeyLeft}:  Move(navigation.DirLeft),
			{Key: terminal.KeyRight}: Move(navigation.DirRight),

			{Key: terminal.KeyUp, Mod: terminal.ModShift}:    Jump(navigation.DirUp),
			{Key: terminal.KeyDown, Mod: terminal.ModShift}:  Jump(navigation.DirDown),
			{Key: terminal.KeyLeft, Mod: terminal.ModShift}:  Jump(navigation.DirLeft),
			{Key: terminal.KeyRight, Mod: terminal.ModShift}: Jump(navigation.DirRight),
		},
	}
}

// Classify maps an event to its intent
// Only plain key presses are classified; releases, repeats and events
// carrying lock or keypad state are IntentNone
func (k *Keymap) Classify(ev terminal.Event) Intent {
	if ev.Type != terminal.EventKey || ev.Kind != terminal.KindPress || ev.State != terminal.StateNone {
		return Intent{}
	}

	b := Binding{Key: ev.Key, Mod: ev.Modifiers}
	if ev.Key == terminal.KeyRune {
		b.Rune = ev.Rune
	}
	return k.bindings[b]
}

// Bind sets or replaces a binding; binding IntentNone removes it
func (k *Keymap) Bind(b Binding, in Intent) {
	if in.Type == IntentNone {
		delete(k.bindings, b)
		return
	}
	if k.bindings == nil {
		k.bindings = make(map[Binding]Intent)
	}
	k.bindings[b] = in
}

// Len returns the number of active bindings
func (k *Keymap) Len() int { return len(k.bindings) }
