package diff

import (
	"time"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/screen"
)

// Result is the ordered operation list reconciling front into back.
type Result struct {
	Ops []Op
	// EstimatedCost approximates the work in terminal write units.
	EstimatedCost uint32
	// Elapsed is the time spent generating this result.
	Elapsed time.Duration
}

// Empty reports whether the result carries no work.
func (r Result) Empty() bool { return len(r.Ops) == 0 }

// Generate compares two grids and returns the operations that turn the front
// content into the back content. Grids of mismatched geometry cannot be
// compared row-for-row and produce a full repaint of the back grid.
func Generate(front, back [][]core.Cell, opts Options) Result {
	return generate(front, back, opts, !sameGeometry(front, back))
}

// GenerateFor diffs a screen buffer's front and back grids, consuming its
// pending full-redraw flag. A set flag repaints every cell regardless of
// front/back equality.
func GenerateFor(sb *screen.ScreenBuffer, opts Options) Result {
	return generate(sb.Front(), sb.Back(), opts, sb.ConsumeRedraw())
}

func generate(front, back [][]core.Cell, opts Options, force bool) Result {
	start := time.Now()
	opts = opts.normalized()

	var res Result
	height := len(back)
	if height == 0 || len(back[0]) == 0 {
		res.Elapsed = time.Since(start)
		return res
	}

	if !force && buffersEqual(front, back) {
		res.Elapsed = time.Since(start)
		return res
	}

	if !force && opts.Level >= LevelBalanced && opts.DetectScrolling {
		if lines, ok := detectScroll(front, back); ok {
			op := Scroll{
				Region: Rect{X: 0, Y: 0, Width: len(back[0]), Height: height},
				Lines:  lines,
			}
			res.add(op)
			front = scrolledView(front, lines)
		}
	}

	for y := 0; y < height; y++ {
		var frontRow []core.Cell
		if !force && y < len(front) {
			frontRow = front[y]
		}
		if opts.Level == LevelNone {
			diffRowCells(frontRow, back[y], y, force, &res)
		} else {
			diffRowRuns(frontRow, back[y], y, force, opts.MergeThreshold, &res)
		}
	}

	res.Elapsed = time.Since(start)
	return res
}

func (r *Result) add(op Op) {
	r.Ops = append(r.Ops, op)
	r.EstimatedCost += op.Cost()
}

// diffRowCells emits one SetCell per differing cell in the row.
func diffRowCells(front, back []core.Cell, y int, force bool, res *Result) {
	for x, cell := range back {
		if !force && x < len(front) && front[x] == cell {
			continue
		}
		res.add(SetCell{X: x, Y: y, Cell: cell})
	}
}

// diffRowRuns walks the row left to right, extends each mismatch into a
// maximal run, and classifies the run against the merge threshold. Runs at
// or above the threshold become one SetSpan viewing the back row's storage.
func diffRowRuns(front, back []core.Cell, y int, force bool, threshold int, res *Result) {
	width := len(back)
	x := 0
	for x < width {
		if !force && x < len(front) && front[x] == back[x] {
			x++
			continue
		}
		start := x
		for x < width && (force || x >= len(front) || front[x] != back[x]) {
			x++
		}
		if x-start >= threshold {
			res.add(SetSpan{X: start, Y: y, Cells: back[start:x]})
			continue
		}
		for i := start; i < x; i++ {
			res.add(SetCell{X: i, Y: y, Cell: back[i]})
		}
	}
}

func sameGeometry(front, back [][]core.Cell) bool {
	if len(front) != len(back) {
		return false
	}
	if len(back) == 0 {
		return true
	}
	return len(front[0]) == len(back[0])
}

func buffersEqual(front, back [][]core.Cell) bool {
	for y := range back {
		if !rowsEqual(front[y], back[y]) {
			return false
		}
	}
	return true
}
