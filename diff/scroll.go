package diff

import "github.com/dshills/cellstorm/core"

// maxScrollCap bounds the probed scroll distance regardless of height.
const maxScrollCap = 10

// detectScroll looks for a vertical offset at which shifted front rows match
// back rows closely enough that a single scroll explains most of the frame.
// Positive lines mean content moved up. Distances are probed outward from 1;
// the first offset where matches exceed 70% of the height wins. There is no
// search for a globally best offset.
func detectScroll(front, back [][]core.Cell) (int, bool) {
	height := len(back)
	if len(front) != height {
		return 0, false
	}
	maxScroll := min(height/4, maxScrollCap)
	for distance := 1; distance <= maxScroll; distance++ {
		for _, lines := range [2]int{distance, -distance} {
			if countShiftedMatches(front, back, lines)*10 > height*7 {
				return lines, true
			}
		}
	}
	return 0, false
}

// countShiftedMatches counts back rows equal to the front row that lands on
// them after scrolling by lines.
func countShiftedMatches(front, back [][]core.Cell, lines int) int {
	height := len(back)
	matches := 0
	for y := 0; y < height; y++ {
		src := y + lines
		if src < 0 || src >= height {
			continue
		}
		if rowsEqual(front[src], back[y]) {
			matches++
		}
	}
	return matches
}

func rowsEqual(a, b []core.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// scrolledView builds the row set the terminal shows after scrolling front
// by lines. Surviving rows alias front's storage; rows the scroll exposes
// are empty, matching the blank lines a terminal scroll reveals.
func scrolledView(front [][]core.Cell, lines int) [][]core.Cell {
	height := len(front)
	if height == 0 {
		return front
	}
	blank := make([]core.Cell, len(front[0]))
	view := make([][]core.Cell, height)
	for y := range view {
		src := y + lines
		if src >= 0 && src < height {
			view[y] = front[src]
		} else {
			view[y] = blank
		}
	}
	return view
}
