//go:build unix && !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

// resetTerminalMode is a no-op where termios ioctl names are not mapped
func resetTerminalMode() {}
