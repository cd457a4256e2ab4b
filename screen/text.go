package screen

import (
	"github.com/dshills/cellstorm/core"
)

// TextOptions control WriteText styling and layout.
type TextOptions struct {
	// Foreground and Background default to the terminal colors.
	Foreground core.Color
	Background core.Color
	// Attributes are the style flags applied to every written cell.
	Attributes core.Attribute
	// Wrap continues text past the right edge at column 0 of the next row.
	// Without it, codepoints past the edge are dropped until a newline.
	Wrap bool
}

// Style returns the cell style the options describe.
func (o TextOptions) Style() core.Style {
	return core.Style{
		Foreground: o.Foreground,
		Background: o.Background,
		Attributes: o.Attributes,
	}
}

// WriteText writes a string into the back buffer starting at (x, y),
// advancing by each codepoint's display width. Wide characters occupy two
// columns (a continuation cell is stored after them); zero-width codepoints
// are skipped. A newline resets the column to 0 and advances the row whether
// or not wrapping is enabled. Content past the bottom row is silently
// dropped. Returns the number of cells written, continuations excluded.
func (sb *ScreenBuffer) WriteText(x, y int, text string, opts TextOptions) int {
	style := opts.Style()
	written := 0
	col, row := x, y

	for _, r := range text {
		if r == '\n' {
			col = 0
			row++
			continue
		}
		if row >= sb.height {
			// The row only ever advances, so nothing further can land
			// inside the buffer.
			break
		}

		cell := core.NewStyledCell(r, style)
		if cell.Width == 0 {
			// Combining marks and normalized-away controls occupy no column.
			continue
		}
		w := int(cell.Width)

		if col+w > sb.width {
			if !opts.Wrap {
				// Dropped, but keep scanning: a later newline resumes
				// output on the next row.
				col += w
				continue
			}
			col = 0
			row++
			if row >= sb.height {
				break
			}
			if w > sb.width {
				continue
			}
		}

		if col >= 0 && row >= 0 {
			sb.back[row][col] = cell
			written++
			if w == 2 {
				sb.back[row][col+1] = core.ContinuationCell(style)
			}
		}
		col += w
	}

	return written
}

// DrawHLine draws a horizontal run of the given cell starting at (x, y),
// clipped to the grid.
func (sb *ScreenBuffer) DrawHLine(x, y, length int, cell core.Cell) {
	sb.FillRect(x, y, length, 1, cell)
}

// DrawVLine draws a vertical run of the given cell starting at (x, y),
// clipped to the grid.
func (sb *ScreenBuffer) DrawVLine(x, y, length int, cell core.Cell) {
	sb.FillRect(x, y, 1, length, cell)
}
