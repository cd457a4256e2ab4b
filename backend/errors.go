package backend

import "errors"

// Sentinel errors for the backend package.
var (
	// ErrNotTerminal is returned when the input stream is not a terminal.
	ErrNotTerminal = errors.New("stdin is not a terminal")

	// ErrSessionClosed is returned when operations are attempted on a stopped session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSessionNotStarted is returned when a frame is requested before Start.
	ErrSessionNotStarted = errors.New("session not started")
)
