package xterm

import "testing"

func TestPaletteLandmarks(t *testing.T) {
	tests := []struct {
		index   uint8
		r, g, b uint8
	}{
		{0, 0x00, 0x00, 0x00},
		{15, 0xff, 0xff, 0xff},
		{16, 0x00, 0x00, 0x00},
		{21, 0x00, 0x00, 0xff},
		{196, 0xff, 0x00, 0x00},
		{46, 0x00, 0xff, 0x00},
		{231, 0xff, 0xff, 0xff},
		{232, 0x08, 0x08, 0x08},
		{255, 0xee, 0xee, 0xee},
	}
	for _, tt := range tests {
		r, g, b := RGB(tt.index)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("index %d = #%02x%02x%02x, want #%02x%02x%02x",
				tt.index, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestCubeUsesXtermLevels(t *testing.T) {
	want := []uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	for i, level := range want {
		// Walk the blue channel of the first cube row.
		_, _, b := RGB(uint8(16 + i))
		if b != level {
			t.Errorf("cube level %d = 0x%02x, want 0x%02x", i, b, level)
		}
	}
}
