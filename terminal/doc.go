// @focus: #sys { term }
// Package terminal provides raw-mode terminal access for the editor shell.
//
// Features:
//   - Raw mode enter/restore with guaranteed restoration (Fini is idempotent)
//   - Viewport size query, taken once at startup
//   - Bounded-timeout key polling with escape sequence decoding
//   - Pre-built ANSI sequences for frame composition
//   - Two device backends: stdin/stdout and a /dev/tty device via tcell
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
