package render

import (
	"testing"

	"github.com/dshills/cellstorm/core"
)

func TestAppendInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{9, "9"},
		{10, "10"},
		{99, "99"},
		{100, "100"},
		{255, "255"},
		{999, "999"},
		{1000, "1000"},
		{12345, "12345"},
		{-3, "0"},
	}
	for _, tt := range tests {
		if got := string(appendInt(nil, tt.n)); got != tt.want {
			t.Errorf("appendInt(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAppendCursorMoveIsOneBased(t *testing.T) {
	if got := string(appendCursorMove(nil, 0, 0)); got != "\x1b[1;1H" {
		t.Errorf("origin move = %q", got)
	}
	if got := string(appendCursorMove(nil, 79, 23)); got != "\x1b[24;80H" {
		t.Errorf("corner move = %q", got)
	}
}

func TestAppendColorSequences(t *testing.T) {
	tests := []struct {
		name  string
		color core.Color
		fg    string
		bg    string
	}{
		{"basic red", core.ColorFromBasic(1), "\x1b[31m", "\x1b[41m"},
		{"basic white", core.ColorFromBasic(7), "\x1b[37m", "\x1b[47m"},
		{"indexed", core.ColorFromIndex(200), "\x1b[38;5;200m", "\x1b[48;5;200m"},
		{"rgb", core.ColorFromRGB(1, 22, 255), "\x1b[38;2;1;22;255m", "\x1b[48;2;1;22;255m"},
		{"default emits nothing", core.ColorDefault, "", ""},
	}
	for _, tt := range tests {
		if got := string(appendFg(nil, tt.color)); got != tt.fg {
			t.Errorf("%s: fg = %q, want %q", tt.name, got, tt.fg)
		}
		if got := string(appendBg(nil, tt.color)); got != tt.bg {
			t.Errorf("%s: bg = %q, want %q", tt.name, got, tt.bg)
		}
	}
}

func TestAppendScrollRegion(t *testing.T) {
	if got := string(appendScrollRegion(nil, 2, 5)); got != "\x1b[3;6r" {
		t.Errorf("scroll region = %q", got)
	}
}
