package input

import (
	"errors"
	"testing"

	"github.com/lixenwraith/rudolf/navigation"
	"github.com/lixenwraith/rudolf/terminal"
)

func keyEvent(k terminal.Key, mod terminal.Modifier) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: mod}
}

func TestDefaultKeymapClassify(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name string
		ev   terminal.Event
		want Intent
	}{
		{"ctrl+q", keyEvent(terminal.KeyCtrlQ, terminal.ModNone), Quit},
		{"up", keyEvent(terminal.KeyUp, terminal.ModNone), Move(navigation.DirUp)},
		{"down", keyEvent(terminal.KeyDown, terminal.ModNone), Move(navigation.DirDown)},
		{"left", keyEvent(terminal.KeyLeft, terminal.ModNone), Move(navigation.DirLeft)},
		{"right", keyEvent(terminal.KeyRight, terminal.ModNone), Move(navigation.DirRight)},
		{"shift+up", keyEvent(terminal.KeyUp, terminal.ModShift), Jump(navigation.DirUp)},
		{"shift+down", keyEvent(terminal.KeyDown, terminal.ModShift), Jump(navigation.DirDown)},
		{"shift+left", keyEvent(terminal.KeyLeft, terminal.ModShift), Jump(navigation.DirLeft)},
		{"shift+right", keyEvent(terminal.KeyRight, terminal.ModShift), Jump(navigation.DirRight)},
		{"ctrl+up", keyEvent(terminal.KeyUp, terminal.ModCtrl), Intent{}},
		{"shift+ctrl+up", keyEvent(terminal.KeyUp, terminal.ModShift|terminal.ModCtrl), Intent{}},
		{"alt+ctrl+q", keyEvent(terminal.KeyCtrlQ, terminal.ModAlt), Intent{}},
		{"plain q", terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q'}, Intent{}},
		{"escape", keyEvent(terminal.KeyEscape, terminal.ModNone), Intent{}},
	}

	for _, tt := range tests {
		if got := km.Classify(tt.ev); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestClassifyOnlyPlainPresses(t *testing.T) {
	km := DefaultKeymap()

	release := keyEvent(terminal.KeyUp, terminal.ModNone)
	release.Kind = terminal.KindRelease
	if got := km.Classify(release); got.Type != IntentNone {
		t.Errorf("Expected release to be unrecognized, got %+v", got)
	}

	repeat := keyEvent(terminal.KeyCtrlQ, terminal.ModNone)
	repeat.Kind = terminal.KindRepeat
	if got := km.Classify(repeat); got.Type != IntentNone {
		t.Errorf("Expected repeat to be unrecognized, got %+v", got)
	}

	keypad := keyEvent(terminal.KeyUp, terminal.ModNone)
	keypad.State = terminal.StateKeypad
	if got := km.Classify(keypad); got.Type != IntentNone {
		t.Errorf("Expected keypad-flagged event to be unrecognized, got %+v", got)
	}

	// Meta is never bound by default, even alongside Shift
	metaShift := keyEvent(terminal.KeyUp, terminal.ModShift|terminal.ModMeta)
	if got := km.Classify(metaShift); got.Type != IntentNone {
		t.Errorf("Expected meta+shift+up to be unrecognized, got %+v", got)
	}

	closed := terminal.Event{Type: terminal.EventClosed}
	if got := km.Classify(closed); got.Type != IntentNone {
		t.Errorf("Expected non-key event to be unrecognized, got %+v", got)
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		want Binding
	}{
		{"ctrl+q", Binding{Key: terminal.KeyCtrlQ}},
		{"Ctrl+X", Binding{Key: terminal.KeyCtrlX}},
		{"ctrl+alt+w", Binding{Key: terminal.KeyCtrlW, Mod: terminal.ModAlt}},
		{"shift+up", Binding{Key: terminal.KeyUp, Mod: terminal.ModShift}},
		{"ctrl+left", Binding{Key: terminal.KeyLeft, Mod: terminal.ModCtrl}},
		{"page_down", Binding{Key: terminal.KeyPageDown}},
		{"esc", Binding{Key: terminal.KeyEscape}},
		{"k", Binding{Key: terminal.KeyRune, Rune: 'k'}},
		{"shift+k", Binding{Key: terminal.KeyRune, Rune: 'K'}},
		{"alt+space", Binding{Key: terminal.KeyRune, Rune: ' ', Mod: terminal.ModAlt}},
	}
	for _, tt := range tests {
		got, err := ParseBinding(tt.in)
		if err != nil {
			t.Errorf("ParseBinding(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBinding(%q): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestParseBindingErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "meta+q", "ctrl+shift+q", "ctrl+h", "ctrl+1", "shift+1", "upup"} {
		if _, err := ParseBinding(in); !errors.Is(err, ErrKeymap) {
			t.Errorf("ParseBinding(%q): expected ErrKeymap, got %v", in, err)
		}
	}
}

func TestZeroKeymapBind(t *testing.T) {
	var km Keymap
	km.Bind(Binding{Key: terminal.KeyRune, Rune: 'q'}, Quit)
	if km.Len() != 1 {
		t.Fatalf("Expected 1 binding, got %d", km.Len())
	}
	if got := km.Classify(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q'}); got != Quit {
		t.Errorf("Expected quit, got %+v", got)
	}
	// Unbinding on an empty keymap is a no-op
	var empty Keymap
	empty.Bind(Binding{Key: terminal.KeyUp}, Intent{})
	if empty.Len() != 0 {
		t.Errorf("Expected 0 bindings, got %d", empty.Len())
	}
}

func TestKeymapApply(t *testing.T) {
	km := DefaultKeymap()
	before := km.Len()

	err := km.Apply(map[string]string{
		"ctrl+q":  "none",
		"ctrl+x":  "quit",
		"k":       "move_up",
		"shift+k": "jump_up",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if km.Len() != before+2 {
		t.Errorf("Expected %d bindings, got %d", before+2, km.Len())
	}

	if got := km.Classify(keyEvent(terminal.KeyCtrlQ, terminal.ModNone)); got.Type != IntentNone {
		t.Errorf("Expected ctrl+q unbound, got %+v", got)
	}
	if got := km.Classify(keyEvent(terminal.KeyCtrlX, terminal.ModNone)); got != Quit {
		t.Errorf("Expected ctrl+x to quit, got %+v", got)
	}
	k := terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'k'}
	if got := km.Classify(k); got != Move(navigation.DirUp) {
		t.Errorf("Expected k to move up, got %+v", got)
	}
	k.Rune = 'K'
	if got := km.Classify(k); got != Jump(navigation.DirUp) {
		t.Errorf("Expected K to jump up, got %+v", got)
	}
}

func TestKeymapApplyUnknownAction(t *testing.T) {
	km := DefaultKeymap()
	err := km.Apply(map[string]string{"ctrl+x": "explode"})
	if !errors.Is(err, ErrKeymap) {
		t.Errorf("Expected ErrKeymap, got %v", err)
	}
}

// fakeMover records calls and reports a fixed result
type fakeMover struct {
	moves []navigation.Direction
	jumps []navigation.Direction
	ok    bool
}

func (f *fakeMover) MoveCursor(dir navigation.Direction) bool {
	f.moves = append(f.moves, dir)
	return f.ok
}

func (f *fakeMover) JumpCursor(dir navigation.Direction) bool {
	f.jumps = append(f.jumps, dir)
	return f.ok
}

func TestMachineDispatch(t *testing.T) {
	mover := &fakeMover{ok: true}
	m := NewMachine(mover)

	if m.State() != StateRunning {
		t.Fatalf("Expected initial state running, got %s", m.State())
	}

	if got := m.Dispatch(Move(navigation.DirLeft)); got != OutcomeMoved {
		t.Errorf("Expected OutcomeMoved, got %d", got)
	}
	if got := m.Dispatch(Jump(navigation.DirDown)); got != OutcomeMoved {
		t.Errorf("Expected OutcomeMoved, got %d", got)
	}
	if got := m.Dispatch(Intent{}); got != OutcomeIgnored {
		t.Errorf("Expected OutcomeIgnored, got %d", got)
	}
	if len(mover.moves) != 1 || mover.moves[0] != navigation.DirLeft {
		t.Errorf("Unexpected unit moves %v", mover.moves)
	}
	if len(mover.jumps) != 1 || mover.jumps[0] != navigation.DirDown {
		t.Errorf("Unexpected jumps %v", mover.jumps)
	}
	if m.State() != StateRunning {
		t.Errorf("Expected running after moves, got %s", m.State())
	}

	mover.ok = false
	if got := m.Dispatch(Move(navigation.DirUp)); got != OutcomeBlocked {
		t.Errorf("Expected OutcomeBlocked, got %d", got)
	}

	if got := m.Dispatch(Quit); got != OutcomeQuit {
		t.Errorf("Expected OutcomeQuit, got %d", got)
	}
	if m.State() != StateTerminated {
		t.Errorf("Expected terminated, got %s", m.State())
	}

	// Terminated machine ignores further input
	calls := len(mover.moves)
	if got := m.Dispatch(Move(navigation.DirUp)); got != OutcomeIgnored {
		t.Errorf("Expected OutcomeIgnored after quit, got %d", got)
	}
	if len(mover.moves) != calls {
		t.Error("Expected no mover call after termination")
	}
}
