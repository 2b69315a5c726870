// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/palette.go
// Summary: Color resolver - fixed 256-color palette and default colors.
// Usage: Used by VTerm and term.Terminal to turn color references into RGB.
//
// Palette layout:
//
//	0-7     ANSI colors      black, red, green, yellow, blue, magenta, cyan, white
//	        (0,0,0) (224,0,0) (0,224,0) (224,224,0) (0,0,224) (224,0,224) (0,224,224) (224,224,224)
//	8-15    bright variants
//	        (128,128,128) (255,64,64) (64,255,64) (255,255,64) (64,64,255) (255,64,255) (64,255,255) (255,255,255)
//	16-231  6x6x6 cube, each axis over 0x00 0x33 0x66 0x99 0xCC 0xFF, index 16+36r+6g+b
//	232-255 grayscale ramp from 0x00 to 0xFF in 24 steps
//
// The palette is not configurable; only the default fg/bg are.

package parser

// RGB is a resolved color. Default is set when the value came from the
// session default, so renderers can substitute a theme color.
type RGB struct {
	R, G, B uint8
	Default bool
}

// DefaultColors holds the per-instance default foreground and background.
type DefaultColors struct {
	FG, BG RGB
}

// FallbackColors is white on black, used when nothing was configured or no
// terminal state is available.
var FallbackColors = DefaultColors{
	FG: RGB{R: 255, G: 255, B: 255, Default: true},
	BG: RGB{R: 0, G: 0, B: 0, Default: true},
}

var ansiColors = [16]RGB{
	{R: 0, G: 0, B: 0},
	{R: 224, G: 0, B: 0},
	{R: 0, G: 224, B: 0},
	{R: 224, G: 224, B: 0},
	{R: 0, G: 0, B: 224},
	{R: 224, G: 0, B: 224},
	{R: 0, G: 224, B: 224},
	{R: 224, G: 224, B: 224},
	{R: 128, G: 128, B: 128},
	{R: 255, G: 64, B: 64},
	{R: 64, G: 255, B: 64},
	{R: 255, G: 255, B: 64},
	{R: 64, G: 64, B: 255},
	{R: 255, G: 64, B: 255},
	{R: 64, G: 255, B: 255},
	{R: 255, G: 255, B: 255},
}

var ramp6 = [6]uint8{0x00, 0x33, 0x66, 0x99, 0xCC, 0xFF}

var ramp24 = [24]uint8{
	0x00, 0x0B, 0x16, 0x21, 0x2C, 0x37, 0x42, 0x4D, 0x58, 0x63, 0x6E, 0x79,
	0x85, 0x90, 0x9B, 0xA6, 0xB1, 0xBC, 0xC7, 0xD2, 0xDD, 0xE8, 0xF3, 0xFF,
}

var palette = buildPalette()

func buildPalette() [256]RGB {
	var p [256]RGB
	copy(p[:16], ansiColors[:])
	for i := 0; i < 216; i++ {
		p[16+i] = RGB{R: ramp6[i/36], G: ramp6[(i/6)%6], B: ramp6[i%6]}
	}
	for i := 0; i < 24; i++ {
		p[232+i] = RGB{R: ramp24[i], G: ramp24[i], B: ramp24[i]}
	}
	return p
}

// PaletteColor returns the fixed RGB value of a palette index.
func PaletteColor(index uint8) RGB { return palette[index] }

// Resolve converts a color reference into RGB. fg selects which session
// default a Default color takes.
func Resolve(c Color, fg bool, defaults DefaultColors) RGB {
	switch c.Mode {
	case ColorModeIndexed:
		return palette[c.Index]
	case ColorModeRGB:
		return RGB{R: c.R, G: c.G, B: c.B}
	default:
		d := defaults.BG
		if fg {
			d = defaults.FG
		}
		d.Default = true
		return d
	}
}

// ResolveCell resolves both colors of a cell. With boldBright set, a bold
// cell whose foreground is one of the first eight palette entries uses the
// bright variant.
func ResolveCell(c Cell, defaults DefaultColors, boldBright bool) (fg, bg RGB) {
	fgRef := c.FG
	if boldBright && c.Attr&AttrBold != 0 && fgRef.Mode == ColorModeIndexed && fgRef.Index < 8 {
		fgRef.Index += 8
	}
	return Resolve(fgRef, true, defaults), Resolve(c.BG, false, defaults)
}
