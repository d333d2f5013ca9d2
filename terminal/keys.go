// @focus: #sys { io } #input { keys }
package terminal

// escapeSequence maps the final byte(s) of an escape sequence to a key
type escapeSequence struct {
	seq string
	key Key
}

// CSI sequences (ESC [ ...) without parameters, or with a single numeric parameter before '~'
var csiSequences = []escapeSequence{
	// Arrow keys
	{"A", KeyUp},
	{"B", KeyDown},
	{"C", KeyRight},
	{"D", KeyLeft},
	{"Z", KeyBacktab},

	// Navigation
	{"H", KeyHome},
	{"F", KeyEnd},
	{"1~", KeyHome},
	{"4~", KeyEnd},
	{"5~", KeyPageUp},
	{"6~", KeyPageDown},
	{"2~", KeyInsert},
	{"3~", KeyDelete},
	{"7~", KeyHome},
	{"8~", KeyEnd},

	// Function keys (xterm)
	{"11~", KeyF1},
	{"12~", KeyF2},
	{"13~", KeyF3},
	{"14~", KeyF4},
	{"15~", KeyF5},
	{"17~", KeyF6},
	{"18~", KeyF7},
	{"19~", KeyF8},
	{"20~", KeyF9},
	{"21~", KeyF10},
	{"23~", KeyF11},
	{"24~", KeyF12},

	// Function keys (linux console)
	{"[A", KeyF1},
	{"[B", KeyF2},
	{"[C", KeyF3},
	{"[D", KeyF4},
	{"[E", KeyF5},
}

// SS3 sequences (ESC O ...), sent in application cursor mode
var ss3Sequences = []escapeSequence{
	{"A", KeyUp},
	{"B", KeyDown},
	{"C", KeyRight},
	{"D", KeyLeft},
	{"H", KeyHome},
	{"F", KeyEnd},
	{"P", KeyF1},
	{"Q", KeyF2},
	{"R", KeyF3},
	{"S", KeyF4},
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]Key {
	m := make(map[string]Key, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s.key
	}
	return m
}

// lookupCSI resolves a CSI body (bytes after ESC [), including xterm modifier forms
// "1;<m>X" and "<n>;<m>~" where m-1 is the shift/alt/ctrl bitmask
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	// The string([]byte) conversion inline in map access does not allocate
	if k, ok := csiMap[string(seq)]; ok {
		return k, ModNone, true
	}

	semi := -1
	for i, b := range seq {
		if b == ';' {
			semi = i
			break
		}
	}
	if semi < 0 || len(seq) < semi+3 {
		return KeyNone, ModNone, false
	}

	final := seq[len(seq)-1]
	param := seq[semi+1 : len(seq)-1]
	mod, ok := xtermModifier(param)
	if !ok {
		return KeyNone, ModNone, false
	}

	var base []byte
	if final == '~' {
		// "<n>;<m>~" -> "<n>~"
		base = append(append(base, seq[:semi]...), '~')
	} else {
		// "1;<m>X" -> "X"
		if string(seq[:semi]) != "1" {
			return KeyNone, ModNone, false
		}
		base = []byte{final}
	}

	if k, ok := csiMap[string(base)]; ok {
		return k, mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if k, ok := ss3Map[string(seq)]; ok {
		return k, ModNone, true
	}
	return KeyNone, ModNone, false
}

// xtermModifier decodes the xterm modifier parameter (1 + bitmask)
func xtermModifier(param []byte) (Modifier, bool) {
	if len(param) == 0 || len(param) > 2 {
		return ModNone, false
	}
	v := 0
	for _, b := range param {
		if b < '0' || b > '9' {
			return ModNone, false
		}
		v = v*10 + int(b-'0')
	}
	if v < 1 || v > 16 {
		return ModNone, false
	}
	bits := v - 1
	var mod Modifier
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	if bits&8 != 0 {
		mod |= ModMeta
	}
	return mod, true
}
