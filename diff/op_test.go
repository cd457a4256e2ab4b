package diff

import (
	"testing"

	"github.com/dshills/cellstorm/core"
)

func TestOpCosts(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want uint32
	}{
		{"set cell", SetCell{}, 1},
		{"span of 3", SetSpan{Cells: make([]core.Cell, 3)}, 1},
		{"span of 4", SetSpan{Cells: make([]core.Cell, 4)}, 2},
		{"span of 8", SetSpan{Cells: make([]core.Cell, 8)}, 3},
		{"scroll up 3", Scroll{Lines: 3}, 4},
		{"scroll down 3", Scroll{Lines: -3}, 4},
		{"clear 5 rows", ClearRegion{Width: 8, Height: 5}, 5},
		{"copy 2 rows", CopyRegion{Width: 8, Height: 2}, 2},
	}
	for _, tt := range tests {
		if got := tt.op.Cost(); got != tt.want {
			t.Errorf("%s: cost = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestResultCostAccumulates(t *testing.T) {
	var res Result
	res.add(SetCell{})
	res.add(SetSpan{Cells: make([]core.Cell, 4)})
	res.add(Scroll{Lines: 1})
	if res.EstimatedCost != 5 {
		t.Errorf("expected accumulated cost 5, got %d", res.EstimatedCost)
	}
	if len(res.Ops) != 3 {
		t.Errorf("expected 3 ops, got %d", len(res.Ops))
	}
}
