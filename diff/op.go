package diff

import (
	"fmt"

	"github.com/dshills/cellstorm/core"
)

// Rect is a rectangular region of a cell grid in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.X, r.Y)
}

// Op is one unit of reconciliation work. Ops must be applied in the order
// produced.
type Op interface {
	// Cost estimates the op in terminal write units. The estimate is a
	// proxy for comparing diff strategies, never a correctness input.
	Cost() uint32
}

// SetCell replaces a single cell.
type SetCell struct {
	X, Y int
	Cell core.Cell
}

func (op SetCell) Cost() uint32 { return 1 }

func (op SetCell) String() string {
	return fmt.Sprintf("SetCell(%d,%d %q)", op.X, op.Y, op.Cell.Rune)
}

// SetSpan replaces a contiguous run of cells within one row. Cells is a view
// into the grid the diff was generated from, not a copy.
type SetSpan struct {
	X, Y  int
	Cells []core.Cell
}

func (op SetSpan) Cost() uint32 { return 1 + uint32(len(op.Cells))/4 }

func (op SetSpan) String() string {
	return fmt.Sprintf("SetSpan(%d,%d len=%d)", op.X, op.Y, len(op.Cells))
}

// CopyRegion moves a rectangular block of already-displayed cells. The
// generator never produces one; it exists for callers composing manual
// updates on top of a generated diff.
type CopyRegion struct {
	SrcX, SrcY    int
	DstX, DstY    int
	Width, Height int
}

func (op CopyRegion) Cost() uint32 { return uint32(max(op.Height, 0)) }

func (op CopyRegion) String() string {
	return fmt.Sprintf("CopyRegion(%d,%d->%d,%d %dx%d)", op.SrcX, op.SrcY, op.DstX, op.DstY, op.Width, op.Height)
}

// ClearRegion resets a rectangular block to empty cells.
type ClearRegion struct {
	X, Y          int
	Width, Height int
}

func (op ClearRegion) Cost() uint32 { return uint32(max(op.Height, 0)) }

func (op ClearRegion) String() string {
	return fmt.Sprintf("ClearRegion(%d,%d %dx%d)", op.X, op.Y, op.Width, op.Height)
}

// Scroll shifts the content of Region vertically by Lines. Positive values
// move content up, exposing blank rows at the bottom; negative values move
// content down.
type Scroll struct {
	Region Rect
	Lines  int
}

func (op Scroll) Cost() uint32 {
	n := op.Lines
	if n < 0 {
		n = -n
	}
	return 1 + uint32(n)
}

func (op Scroll) String() string {
	return fmt.Sprintf("Scroll(%v lines=%d)", op.Region, op.Lines)
}
