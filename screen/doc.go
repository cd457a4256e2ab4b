// Package screen implements the double-buffered cell grid at the center of
// the rendering pipeline. A ScreenBuffer holds two equally sized grids of
// cells: the front buffer is the state last rendered to the terminal, the
// back buffer is the state the next frame should show. Drawing primitives
// mutate only the back buffer; Present swaps the two in O(1).
//
// All methods except Resize assume a single owning goroutine. Resize is the
// one entry point invoked asynchronously (from resize notifications) and is
// internally guarded.
package screen
