// Package xterm carries the xterm 256-color palette used when downsampling
// richer colors for terminals without true-color support.
package xterm

// systemColors are the xterm defaults for the 16 system slots. Real
// terminals let users retheme these, so nearest-color matching should
// prefer the stable cube and grayscale ramps above index 15.
var systemColors = [16][3]uint8{
	{0x00, 0x00, 0x00}, // black
	{0xcd, 0x00, 0x00}, // red
	{0x00, 0xcd, 0x00}, // green
	{0xcd, 0xcd, 0x00}, // yellow
	{0x00, 0x00, 0xee}, // blue
	{0xcd, 0x00, 0xcd}, // magenta
	{0x00, 0xcd, 0xcd}, // cyan
	{0xe5, 0xe5, 0xe5}, // white
	{0x7f, 0x7f, 0x7f}, // bright black
	{0xff, 0x00, 0x00}, // bright red
	{0x00, 0xff, 0x00}, // bright green
	{0xff, 0xff, 0x00}, // bright yellow
	{0x5c, 0x5c, 0xff}, // bright blue
	{0xff, 0x00, 0xff}, // bright magenta
	{0x00, 0xff, 0xff}, // bright cyan
	{0xff, 0xff, 0xff}, // bright white
}

// cubeLevels are the six channel intensities of the 6x6x6 color cube
// occupying indexes 16 through 231.
var cubeLevels = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

var palette = buildPalette()

func buildPalette() [256][3]uint8 {
	var p [256][3]uint8
	copy(p[:16], systemColors[:])
	for i := 0; i < 216; i++ {
		p[16+i] = [3]uint8{
			cubeLevels[i/36],
			cubeLevels[i/6%6],
			cubeLevels[i%6],
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p[232+i] = [3]uint8{v, v, v}
	}
	return p
}

// RGB returns the palette entry for an index.
func RGB(index uint8) (r, g, b uint8) {
	c := palette[index]
	return c[0], c[1], c[2]
}

// CubeStart is the first index of the 6x6x6 color cube. Entries below it
// are the user-themeable system colors.
const CubeStart = 16
