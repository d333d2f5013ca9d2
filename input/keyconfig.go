package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/rudolf/terminal"
)

// ErrKeymap marks an invalid binding or action name in keymap config
var ErrKeymap = errors.New("invalid keymap")

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
}

// Apply merges config overrides of the form "<binding>" = "<action>" into the keymap
// Bindings are "[ctrl+][alt+][shift+]<key>", e.g. "ctrl+q", "shift+up", "x"
// The "none" action removes a binding
// Keys are applied in sorted order so errors are reported deterministically
func (k *Keymap) Apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for s := range overrides {
		keys = append(keys, s)
	}
	sort.Strings(keys)

	for _, s := range keys {
		b, err := ParseBinding(s)
		if err != nil {
			return err
		}
		in, err := resolveAction(overrides[s])
		if err != nil {
			return fmt.Errorf("key %q: %w", s, err)
		}
		k.Bind(b, in)
	}
	return nil
}

// ParseBinding converts a config binding string into the form the decoder reports
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	name := parts[len(parts)-1]
	if name == "" {
		return Binding{}, fmt.Errorf("%w: empty key in %q", ErrKeymap, s)
	}

	var mod terminal.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			mod |= terminal.ModCtrl
		case "alt":
			mod |= terminal.ModAlt
		case "shift":
			mod |= terminal.ModShift
		default:
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrKeymap, p, s)
		}
	}

	// Named key
	if key, ok := terminal.KeyByName(name); ok {
		return Binding{Key: key, Mod: mod}, nil
	}

	r, err := resolveRune(name)
	if err != nil {
		return Binding{}, fmt.Errorf("%w: %q: %v", ErrKeymap, s, err)
	}

	// Control bytes carry no modifier on the wire: ctrl+q arrives as KeyCtrlQ
	if mod&terminal.ModCtrl != 0 {
		key, ok := terminal.CtrlLetter(r)
		if !ok || mod&terminal.ModShift != 0 || !reportableCtrl(key) {
			return Binding{}, fmt.Errorf("%w: %q is not reportable by the terminal", ErrKeymap, s)
		}
		return Binding{Key: key, Mod: mod &^ terminal.ModCtrl}, nil
	}

	// Shifted letters arrive as the uppercase rune
	if mod&terminal.ModShift != 0 {
		if r < 'a' || r > 'z' {
			return Binding{}, fmt.Errorf("%w: %q is not reportable by the terminal", ErrKeymap, s)
		}
		r = r - 'a' + 'A'
		mod &^= terminal.ModShift
	}

	return Binding{Key: terminal.KeyRune, Rune: r, Mod: mod}, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[s]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("expected single character, alias or key name")
}

// resolveAction converts an action name string to an Intent
func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	in, ok := ActionByName(name)
	if !ok {
		return Intent{}, fmt.Errorf("%w: unknown action %q", ErrKeymap, name)
	}
	return in, nil
}

// reportableCtrl excludes control bytes the decoder reports as named keys
func reportableCtrl(k terminal.Key) bool {
	switch k {
	case terminal.KeyCtrlH, terminal.KeyCtrlI, terminal.KeyCtrlJ, terminal.KeyCtrlM:
		return false
	}
	return true
}
