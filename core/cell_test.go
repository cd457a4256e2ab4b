package core

import (
	"testing"
)

func TestEmptyCell(t *testing.T) {
	c := EmptyCell()

	if !c.IsEmpty() {
		t.Error("EmptyCell should be empty")
	}
	if c.Width != 0 {
		t.Errorf("expected width 0, got %d", c.Width)
	}
	if !c.Style.IsDefault() {
		t.Error("EmptyCell should have default style")
	}
}

func TestCellZeroValueIsEmpty(t *testing.T) {
	var c Cell
	if !c.IsEmpty() {
		t.Error("zero value Cell should be empty")
	}
	if !c.Equals(EmptyCell()) {
		t.Error("zero value Cell should equal EmptyCell()")
	}
}

func TestNewCell(t *testing.T) {
	c := NewCell('A')

	if c.IsEmpty() {
		t.Error("cell with content should not be empty")
	}
	if c.Rune != 'A' {
		t.Errorf("expected 'A', got %q", c.Rune)
	}
	if c.Width != 1 {
		t.Errorf("expected width 1, got %d", c.Width)
	}
}

func TestNewCellWide(t *testing.T) {
	c := NewCell('世')
	if c.Width != 2 {
		t.Errorf("expected width 2, got %d", c.Width)
	}
}

func TestNewCellNormalizesInvalidRunes(t *testing.T) {
	invalid := []rune{
		-1,
		0xD800,   // surrogate low bound
		0xDFFF,   // surrogate high bound
		0x110000, // past the Unicode range
		0x07,     // control
		'\n',
		0x7F, // DEL
	}

	for _, r := range invalid {
		c := NewCell(r)
		if !c.IsEmpty() {
			t.Errorf("NewCell(%#x) should degrade to an empty cell", r)
		}
		if c.Width != 0 {
			t.Errorf("NewCell(%#x) should have width 0, got %d", r, c.Width)
		}
	}
}

func TestCellEmptinessIgnoresStyling(t *testing.T) {
	c := ContinuationCell(NewStyle(ColorRed).Bold())
	if !c.IsEmpty() {
		t.Error("emptiness is a content property; styling should not matter")
	}
}

func TestCellEquals(t *testing.T) {
	c1 := NewStyledCell('A', NewStyle(ColorRed))
	c2 := NewStyledCell('A', NewStyle(ColorRed))
	c3 := NewStyledCell('A', NewStyle(ColorBlue))
	c4 := NewStyledCell('B', NewStyle(ColorRed))

	if !c1.Equals(c2) {
		t.Error("identical cells should be equal")
	}
	if c1.Equals(c3) {
		t.Error("cells with different colors should not be equal")
	}
	if c1.Equals(c4) {
		t.Error("cells with different content should not be equal")
	}
}

func TestCellVisuallyEquals(t *testing.T) {
	plain := NewStyledCell('A', DefaultStyle())
	hidden := NewStyledCell('A', DefaultStyle().Hidden())
	bold := NewStyledCell('A', DefaultStyle().Bold())

	if !plain.VisuallyEquals(hidden) {
		t.Error("cells differing only in the hidden bit are visually equal")
	}
	if !hidden.VisuallyEquals(plain) {
		t.Error("visual equality should be symmetric")
	}
	if plain.VisuallyEquals(bold) {
		t.Error("a bold difference is visible")
	}
	if plain.Equals(hidden) {
		t.Error("full equality still distinguishes the hidden bit")
	}
}

func TestCellContentEquals(t *testing.T) {
	red := NewStyledCell('x', NewStyle(ColorRed).Bold())
	blue := NewStyledCell('x', NewStyle(ColorBlue))

	if !red.ContentEquals(blue) {
		t.Error("same content should compare content-equal across styles")
	}
	if red.ContentEquals(NewCell('y')) {
		t.Error("different content should not compare content-equal")
	}
}

func TestCellMergeContent(t *testing.T) {
	base := NewStyledCell('a', NewStyle(ColorRed))
	overlay := NewStyledCell('b', DefaultStyle())

	merged := base.Merge(overlay)

	if merged.Rune != 'b' {
		t.Errorf("overlay content should replace base, got %q", merged.Rune)
	}
}

func TestCellMergeEmptyOverlayContent(t *testing.T) {
	base := NewCell('a')
	merged := base.Merge(EmptyCell())

	if !merged.IsEmpty() {
		t.Error("overlay content replaces unconditionally, even when empty")
	}
}

func TestCellMergeColors(t *testing.T) {
	base := NewStyledCell('a', Style{Foreground: ColorRed, Background: ColorBlue})
	overlay := NewStyledCell('b', Style{Foreground: ColorGreen})

	merged := base.Merge(overlay)

	if !merged.Style.Foreground.Equals(ColorGreen) {
		t.Error("overlay non-default foreground should replace base")
	}
	if !merged.Style.Background.Equals(ColorBlue) {
		t.Error("overlay default background should not overwrite base")
	}
}

func TestCellMergeStylesAreAdditive(t *testing.T) {
	base := NewStyledCell('a', DefaultStyle().Bold())
	overlay := NewStyledCell('b', DefaultStyle().Italic())

	merged := base.Merge(overlay)

	if !merged.Style.Attributes.Has(AttrBold) {
		t.Error("merge must not clear an attribute set on the base")
	}
	if !merged.Style.Attributes.Has(AttrItalic) {
		t.Error("merge should add overlay attributes")
	}
}

func TestCellWithRune(t *testing.T) {
	c := NewCell('a').WithRune('世')
	if c.Rune != '世' || c.Width != 2 {
		t.Errorf("WithRune should refresh content and width, got %q width %d", c.Rune, c.Width)
	}

	c = c.WithRune(0xD800)
	if !c.IsEmpty() {
		t.Error("WithRune should normalize invalid codepoints")
	}
}

func TestCellsFromString(t *testing.T) {
	cells := CellsFromString("a世b", DefaultStyle())

	// 'a', '世', continuation, 'b'
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].Rune != 'a' {
		t.Errorf("expected 'a', got %q", cells[0].Rune)
	}
	if cells[1].Rune != '世' || cells[1].Width != 2 {
		t.Errorf("expected wide '世', got %q width %d", cells[1].Rune, cells[1].Width)
	}
	if !cells[2].IsEmpty() || cells[2].Width != 0 {
		t.Error("wide cell should be followed by a continuation cell")
	}
	if cells[3].Rune != 'b' {
		t.Errorf("expected 'b', got %q", cells[3].Rune)
	}
}

func TestCellsFromStringSkipsZeroWidth(t *testing.T) {
	cells := CellsFromString("é", DefaultStyle())
	if len(cells) != 1 {
		t.Fatalf("expected the combining mark to be skipped, got %d cells", len(cells))
	}
	if cells[0].Rune != 'e' {
		t.Errorf("expected 'e', got %q", cells[0].Rune)
	}
}

func TestStringFromCells(t *testing.T) {
	cells := CellsFromString("a世b", DefaultStyle())
	if s := StringFromCells(cells); s != "a世b" {
		t.Errorf("expected round trip to %q, got %q", "a世b", s)
	}
}

func TestContinuationCellCarriesStyle(t *testing.T) {
	style := NewStyle(ColorCyan).Reverse()
	c := ContinuationCell(style)

	if !c.IsEmpty() || c.Width != 0 {
		t.Error("continuation cell should be empty with width 0")
	}
	if !c.Style.Equals(style) {
		t.Error("continuation cell should carry the wide cell's style")
	}
}
