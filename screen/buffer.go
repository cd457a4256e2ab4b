package screen

import (
	"sync/atomic"

	"github.com/dshills/cellstorm/core"
)

// ResizeMode selects what happens to buffer content across a resize.
type ResizeMode uint8

const (
	// ResizePreserve copies the overlapping region of the old content into
	// the new buffer; cells outside the overlap get the default cell.
	ResizePreserve ResizeMode = iota
	// ResizeClear discards all content; the new buffers hold only the
	// default cell.
	ResizeClear
)

// ScreenBuffer provides a double-buffered cell grid.
// The front buffer is what the terminal currently displays; the back buffer
// is what the next frame should display. Drawing primitives mutate only the
// back buffer. Both buffers are always exactly width x height and fully
// initialized.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	defaultCell   core.Cell

	resizing    atomic.Bool
	forceRedraw bool
}

// New creates a screen buffer with the given dimensions, using the empty
// cell as the default. Fails with ErrInvalidDimensions if either dimension
// is zero or negative.
func New(width, height int) (*ScreenBuffer, error) {
	return NewWithDefault(width, height, core.EmptyCell())
}

// NewWithDefault creates a screen buffer whose clear operations fill with
// the given cell instead of the plain empty cell.
func NewWithDefault(width, height int, defaultCell core.Cell) (*ScreenBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	sb := &ScreenBuffer{
		width:       width,
		height:      height,
		defaultCell: defaultCell,
	}
	sb.front = sb.allocate()
	sb.back = sb.allocate()
	return sb, nil
}

// allocate creates one grid at the current dimensions, filled with the
// default cell.
func (sb *ScreenBuffer) allocate() [][]core.Cell {
	grid := make([][]core.Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		row := make([]core.Cell, sb.width)
		for x := range row {
			row[x] = sb.defaultCell
		}
		grid[y] = row
	}
	return grid
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// Width returns the buffer width in columns.
func (sb *ScreenBuffer) Width() int { return sb.width }

// Height returns the buffer height in rows.
func (sb *ScreenBuffer) Height() int { return sb.height }

// DefaultCell returns the cell used to fill cleared regions.
func (sb *ScreenBuffer) DefaultCell() core.Cell { return sb.defaultCell }

// SetDefaultCell changes the fill cell for future clears and resizes.
// Existing content is not rewritten.
func (sb *ScreenBuffer) SetDefaultCell(cell core.Cell) {
	sb.defaultCell = cell
}

// SetCell sets a cell in the back buffer. Fails with ErrOutOfBounds when
// the coordinates are outside the grid.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) error {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return ErrOutOfBounds
	}
	sb.back[y][x] = cell
	return nil
}

// GetCell returns a cell from the back buffer. Out-of-bounds coordinates
// return the default cell and ErrOutOfBounds.
func (sb *ScreenBuffer) GetCell(x, y int) (core.Cell, error) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return sb.defaultCell, ErrOutOfBounds
	}
	return sb.back[y][x], nil
}

// GetFrontCell returns a cell from the front buffer (currently displayed).
// Out-of-bounds coordinates return the default cell and ErrOutOfBounds.
func (sb *ScreenBuffer) GetFrontCell(x, y int) (core.Cell, error) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return sb.defaultCell, ErrOutOfBounds
	}
	return sb.front[y][x], nil
}

// Front borrows the front grid for read-only access, row-major.
// The slices are invalidated by Resize and Present; callers must not
// retain them across either call.
func (sb *ScreenBuffer) Front() [][]core.Cell { return sb.front }

// Back borrows the back grid for read-only access, row-major.
// The slices are invalidated by Resize and Present; callers must not
// retain them across either call.
func (sb *ScreenBuffer) Back() [][]core.Cell { return sb.back }

// FillRect fills a rectangle in the back buffer, clipped to the grid.
// Requests entirely outside the bounds are no-ops, not errors.
func (sb *ScreenBuffer) FillRect(x, y, w, h int, cell core.Cell) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, sb.width), min(y+h, sb.height)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			sb.back[row][col] = cell
		}
	}
}

// ClearRegion fills a rectangle with the default cell, clipped to the grid.
func (sb *ScreenBuffer) ClearRegion(x, y, w, h int) {
	sb.FillRect(x, y, w, h, sb.defaultCell)
}

// Clear fills the entire back buffer with the default cell.
func (sb *ScreenBuffer) Clear() {
	sb.FillRect(0, 0, sb.width, sb.height, sb.defaultCell)
}

// Present swaps the front and back buffers in O(1). The back buffer then
// holds the previously displayed frame; it is not cleared, so callers that
// draw incrementally must repaint it before the next diff.
func (sb *ScreenBuffer) Present() {
	sb.front, sb.back = sb.back, sb.front
}

// Resize reallocates both buffers at the new dimensions. Under
// ResizePreserve the overlapping region of the back buffer survives
// (row-major copy bounded by the smaller of old and new in each axis);
// under ResizeClear the new buffers hold only the default cell. The front
// buffer starts fresh either way and the force-redraw flag is set, so the
// next diff repaints everything.
//
// Resize carries the buffer's one concurrency guard: a second Resize while
// one is in flight fails with ErrResizeInProgress and may be retried. It
// still swaps the grids, so callers must keep it off the hot path; sessions
// apply resize notifications between frames.
func (sb *ScreenBuffer) Resize(width, height int, mode ResizeMode) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !sb.resizing.CompareAndSwap(false, true) {
		return ErrResizeInProgress
	}
	defer sb.resizing.Store(false)

	if width == sb.width && height == sb.height {
		return nil
	}

	oldBack := sb.back
	oldWidth := sb.width
	oldHeight := sb.height

	sb.width = width
	sb.height = height
	sb.front = sb.allocate()
	sb.back = sb.allocate()

	if mode == ResizePreserve {
		copyHeight := min(oldHeight, height)
		copyWidth := min(oldWidth, width)
		for y := 0; y < copyHeight; y++ {
			copy(sb.back[y][:copyWidth], oldBack[y][:copyWidth])
		}
	}

	sb.forceRedraw = true
	return nil
}

// ForceRedraw marks the buffer so the next diff treats every cell as
// changed, regardless of front/back equality.
func (sb *ScreenBuffer) ForceRedraw() {
	sb.forceRedraw = true
}

// ConsumeRedraw returns the force-redraw flag and clears it.
func (sb *ScreenBuffer) ConsumeRedraw() bool {
	f := sb.forceRedraw
	sb.forceRedraw = false
	return f
}

// Snapshot returns a deep copy of the back buffer.
func (sb *ScreenBuffer) Snapshot() [][]core.Cell {
	grid := make([][]core.Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		row := make([]core.Cell, sb.width)
		copy(row, sb.back[y])
		grid[y] = row
	}
	return grid
}
