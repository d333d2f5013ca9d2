package constant

import "time"

// Identity
const (
	// AppName is the program and config directory name
	AppName = "rudolf"

	// Version is shown on the banner row
	Version = "0.1 beta"

	// WelcomeMessage is shown on the row a quarter down the screen
	WelcomeMessage = "Welcome to Rudolf"
)

// Screen composition
const (
	// EmptyRowMarker prefixes rows that hold no content
	EmptyRowMarker = "~"
)

// Input
const (
	// PollInterval bounds each wait for input so external termination is noticed
	PollInterval = 500 * time.Millisecond

	// MinPollInterval and MaxPollInterval bound configured poll intervals
	MinPollInterval = 10 * time.Millisecond
	MaxPollInterval = 5 * time.Second
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "rudolf.log"
	MaxLogSize  = 10 * 1024 * 1024
)
