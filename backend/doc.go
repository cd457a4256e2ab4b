// Package backend abstracts the terminal the engine draws on.
//
// A Backend owns the output side of a terminal: raw mode, the alternate
// screen, cursor visibility, and the byte sink the renderer writes frames
// into. Two real implementations are provided. ANSIBackend talks to a unix
// terminal directly over escape sequences; TcellBackend wraps a tcell screen
// for portability and applies diffs cell by cell instead of consuming the
// renderer's byte stream. NullBackend is an in-memory double for tests.
//
// Session ties a backend, a screen buffer, and a renderer together into a
// frame loop with resize handling.
package backend
