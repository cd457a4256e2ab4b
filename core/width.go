package core

// RuneWidth returns the display width of a codepoint in terminal columns:
// 0, 1, or 2.
//
// The classification is a deliberate range heuristic, not a full Unicode
// width table: combining marks U+0300-U+036F are zero width, a small set of
// East-Asian and emoji blocks are double width, and everything else is
// single width. Callers that need exact layout for scripts outside these
// ranges should pre-measure text themselves; the boundaries here are part of
// the engine's compatibility contract and must not drift.
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x0300 && r <= 0x036F {
		return 0
	}
	if isWideRune(r) {
		return 2
	}
	return 1
}

// isWideRune checks if a rune is a wide (double-width) character.
func isWideRune(r rune) bool {
	if r >= 0x1100 && r <= 0x115F {
		return true // Hangul Jamo
	}
	if r >= 0x2E80 && r <= 0x9FFF {
		return true // CJK radicals through unified ideographs
	}
	if r >= 0xF900 && r <= 0xFAFF {
		return true // CJK compatibility ideographs
	}
	if r >= 0xFE30 && r <= 0xFE4F {
		return true // CJK compatibility forms
	}
	if r >= 0x1F300 && r <= 0x1F9FF {
		return true // emoji and pictographs
	}
	return false
}

// StringWidth returns the total display width of a string in columns.
// Newlines and other control characters count as zero.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		width += RuneWidth(r)
	}
	return width
}
