package render

import (
	"testing"

	"github.com/dshills/cellstorm/core"
)

func TestDownsampleTrueColorIdentity(t *testing.T) {
	c := core.ColorFromRGB(12, 34, 56)
	if got := Downsample(c, ModeTrueColor); !got.Equals(c) {
		t.Errorf("true color should pass through, got %v", got)
	}
}

func TestDownsampleRGBToIndexed(t *testing.T) {
	tests := []struct {
		name string
		c    core.Color
		want uint8
	}{
		{"pure red hits the cube", core.ColorFromRGB(0xff, 0x00, 0x00), 196},
		{"black hits cube origin", core.ColorFromRGB(0x00, 0x00, 0x00), 16},
		{"white hits cube corner", core.ColorFromRGB(0xff, 0xff, 0xff), 231},
		{"mid gray hits the ramp", core.ColorFromRGB(0x80, 0x80, 0x80), 244},
	}
	for _, tt := range tests {
		got := Downsample(tt.c, ModeIndexed256)
		if got.Kind != core.ColorKindIndexed || got.Index() != tt.want {
			t.Errorf("%s: got %v, want index %d", tt.name, got, tt.want)
		}
	}
}

func TestDownsampleLeavesNarrowerKinds(t *testing.T) {
	idx := core.ColorFromIndex(100)
	if got := Downsample(idx, ModeIndexed256); !got.Equals(idx) {
		t.Errorf("indexed color should survive 256 mode, got %v", got)
	}
	basic := core.ColorFromBasic(3)
	if got := Downsample(basic, ModeIndexed256); !got.Equals(basic) {
		t.Errorf("basic color should survive 256 mode, got %v", got)
	}
	if got := Downsample(basic, ModeBasic8); !got.Equals(basic) {
		t.Errorf("basic color should survive 8-color mode, got %v", got)
	}
}

func TestDownsampleToBasic(t *testing.T) {
	got := Downsample(core.ColorFromRGB(0xff, 0x00, 0x00), ModeBasic8)
	if got.Kind != core.ColorKindBasic || got.Index() != 1 {
		t.Errorf("pure red should map to basic red, got %v", got)
	}

	got = Downsample(core.ColorFromIndex(196), ModeBasic8)
	if got.Kind != core.ColorKindBasic || got.Index() != 1 {
		t.Errorf("indexed red should map through the palette to basic red, got %v", got)
	}
}

func TestDownsampleMonoDropsColor(t *testing.T) {
	for _, c := range []core.Color{
		core.ColorFromRGB(10, 20, 30),
		core.ColorFromIndex(99),
		core.ColorFromBasic(5),
	} {
		if got := Downsample(c, ModeMono); !got.IsDefault() {
			t.Errorf("mono should drop %v, got %v", c, got)
		}
	}
}

func TestDownsampleDefaultUntouched(t *testing.T) {
	for _, mode := range []ColorMode{ModeTrueColor, ModeIndexed256, ModeBasic8, ModeMono} {
		if got := Downsample(core.ColorDefault, mode); !got.IsDefault() {
			t.Errorf("mode %v should keep default colors default", mode)
		}
	}
}

func TestColorModeStrings(t *testing.T) {
	tests := map[ColorMode]string{
		ModeTrueColor:  "truecolor",
		ModeIndexed256: "256",
		ModeBasic8:     "8",
		ModeMono:       "mono",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", mode, got, want)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		mode ColorMode
		ok   bool
	}{
		{"truecolor", ModeTrueColor, true},
		{"24bit", ModeTrueColor, true},
		{"256", ModeIndexed256, true},
		{"256color", ModeIndexed256, true},
		{"8", ModeBasic8, true},
		{"ansi", ModeBasic8, true},
		{"mono", ModeMono, true},
		{"none", ModeMono, true},
		{"plaid", ModeTrueColor, false},
		{"", ModeTrueColor, false},
	}
	for _, tt := range tests {
		mode, ok := ParseColorMode(tt.in)
		if mode != tt.mode || ok != tt.ok {
			t.Errorf("ParseColorMode(%q) = (%v, %v), want (%v, %v)", tt.in, mode, ok, tt.mode, tt.ok)
		}
	}
}
