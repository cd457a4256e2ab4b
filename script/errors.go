package script

import "errors"

var (
	// ErrEngineClosed is returned by every method after Close.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrNoFrameFunction is returned by RunFrame when the script never
	// registered a frame callback.
	ErrNoFrameFunction = errors.New("script registered no frame function")
)
