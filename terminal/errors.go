package terminal

import "errors"

var (
	// ErrIO marks a failed read, write or mode change on the terminal device
	ErrIO = errors.New("terminal i/o failure")

	// ErrSize marks a viewport size that could not be obtained
	ErrSize = errors.New("terminal size unavailable")

	// ErrBackend marks an unusable or unknown backend
	ErrBackend = errors.New("terminal backend")
)
