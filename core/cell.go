package core

import "unicode/utf8"

// Cell represents a single terminal cell.
//
// A Rune of 0 means the cell is empty: it renders as a background-colored
// blank. Wide characters occupy two columns; the column to the right of a
// width-2 cell holds a continuation cell (empty content carrying the wide
// cell's style).
type Cell struct {
	// Rune is the codepoint to display, or 0 for an empty cell.
	Rune rune

	// Width is the cached display width of the content (0, 1, or 2).
	Width int8

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style. It is the zero value
// of Cell.
func EmptyCell() Cell {
	return Cell{}
}

// NewCell creates a cell with the given rune and default style.
// Invalid codepoints (surrogates, values past the Unicode range, control
// characters) degrade to an empty cell rather than producing an error, so
// drawing primitives built on cells are infallible.
func NewCell(r rune) Cell {
	return NewStyledCell(r, DefaultStyle())
}

// NewStyledCell creates a cell with the given rune and style, applying the
// same invalid-codepoint normalization as NewCell.
func NewStyledCell(r rune, style Style) Cell {
	r = normalizeRune(r)
	return Cell{
		Rune:  r,
		Width: int8(RuneWidth(r)),
		Style: style,
	}
}

// ContinuationCell returns the cell stored to the right of a wide character.
// It is empty content carrying the wide cell's style.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// normalizeRune maps codepoints that cannot be stored in a cell to the
// empty sentinel: surrogates, values outside the Unicode range, and
// control characters (which would corrupt the output stream if emitted).
func normalizeRune(r rune) rune {
	if r <= 0 || r > utf8.MaxRune {
		return 0
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return 0
	}
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return r
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithRune returns a new cell with the given rune, normalized like NewCell.
func (c Cell) WithRune(r rune) Cell {
	r = normalizeRune(r)
	c.Rune = r
	c.Width = int8(RuneWidth(r))
	return c
}

// IsEmpty returns true if the cell has no content. Emptiness is a property
// of the content alone; an empty cell may still carry colors and attributes.
func (c Cell) IsEmpty() bool {
	return c.Rune == 0
}

// Equals returns true if two cells are fully identical: content, foreground,
// background, and every attribute flag.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && c.Style.Equals(other.Style)
}

// VisuallyEquals is Equals with the hidden attribute masked out of both
// sides: cells that differ only in AttrHidden compare as visually equal.
func (c Cell) VisuallyEquals(other Cell) bool {
	if c.Rune != other.Rune {
		return false
	}
	return c.Style.Foreground.Equals(other.Style.Foreground) &&
		c.Style.Background.Equals(other.Style.Background) &&
		c.Style.Attributes.Without(AttrHidden) == other.Style.Attributes.Without(AttrHidden)
}

// ContentEquals compares content only, ignoring all styling.
func (c Cell) ContentEquals(other Cell) bool {
	return c.Rune == other.Rune
}

// Merge composites an overlay cell onto this one. The overlay's content
// replaces the base content; its non-default colors replace the base colors
// while default colors leave the base untouched; attributes are OR-combined.
// The merge is additive: it cannot clear an attribute already set on the
// base, and widget code layered above relies on that.
func (c Cell) Merge(overlay Cell) Cell {
	merged := overlay
	merged.Style = c.Style.Merge(overlay.Style)
	return merged
}

// CellsFromString creates styled cells from a string, inserting a
// continuation cell after each wide character. Zero-width codepoints are
// skipped.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		cell := NewStyledCell(r, style)
		if cell.Width == 0 {
			continue
		}
		cells = append(cells, cell)
		if cell.Width == 2 {
			cells = append(cells, ContinuationCell(style))
		}
	}
	return cells
}

// StringFromCells converts cells back to a string, skipping empty and
// continuation cells.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}
