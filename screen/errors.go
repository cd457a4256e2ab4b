package screen

import "errors"

// Errors returned by buffer operations.
var (
	// ErrInvalidDimensions indicates a zero or negative width/height.
	ErrInvalidDimensions = errors.New("invalid buffer dimensions")

	// ErrOutOfBounds indicates coordinates outside the current buffer.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrResizeInProgress indicates a concurrent resize attempt. The caller
	// may retry once the in-flight resize completes.
	ErrResizeInProgress = errors.New("resize already in progress")
)
