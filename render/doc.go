// Package render turns diff operations into a terminal byte stream.
//
// A Renderer accumulates one frame's escape sequences in a growable buffer
// and hands it to the sink in a single write, keeping syscalls to one per
// frame. Across the frame it tracks the virtual cursor position and the
// active SGR state so moves and style changes are only emitted when they
// differ from what the terminal is already showing. Colors are downsampled
// to the terminal's negotiated depth on the way out.
package render
