// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/cell.go
// Summary: Cell, attribute and color reference types for the screen model.
// Usage: Produced by the parser, read by hosts through VTerm and term.Terminal.

package parser

import "strings"

// MaxCharsPerCell bounds the code points stored for one grapheme cluster.
const MaxCharsPerCell = 6

type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrItalic
	AttrBlink
	AttrReverse
	AttrConceal
	AttrStrike
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrUnderline, "underline"},
	{AttrItalic, "italic"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrConceal, "conceal"},
	{AttrStrike, "strike"},
}

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, n := range attrNames {
		if a&n.attr != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault ColorMode = iota // Session default fg/bg, resolved late
	ColorModeIndexed                  // 256-entry palette index
	ColorModeRGB                      // 24-bit "true" color
)

// Color is a color reference as written by the child program.
// Default is never baked into RGB; see Resolve.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

var DefaultColor = Color{Mode: ColorModeDefault}

// IndexedColor returns a palette reference.
func IndexedColor(i uint8) Color { return Color{Mode: ColorModeIndexed, Index: i} }

// RGBColor returns a direct color reference.
func RGBColor(r, g, b uint8) Color { return Color{Mode: ColorModeRGB, R: r, G: g, B: b} }

// IsDefault reports whether the color defers to the session default.
func (c Color) IsDefault() bool { return c.Mode == ColorModeDefault }

// Pen is the rendition applied to newly written cells.
type Pen struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// Cell represents a single character cell on the screen.
//
// Chars holds one grapheme cluster; unused slots are 0. Width is 1 for
// ordinary glyphs, 2 for the leading half of a wide glyph and 0 for the
// placeholder that follows it.
type Cell struct {
	Chars [MaxCharsPerCell]rune
	Width int
	FG    Color
	BG    Color
	Attr  Attribute
}

// blankCell returns an erased cell. The background follows the pen (BCE).
func blankCell(bg Color) Cell {
	return Cell{Width: 1, FG: DefaultColor, BG: bg}
}

// Rune returns the base code point of the cell, or 0 for an empty cell.
func (c Cell) Rune() rune { return c.Chars[0] }

// IsBlank reports whether the cell holds no glyph.
func (c Cell) IsBlank() bool { return c.Chars[0] == 0 }

// IsPlaceholder reports whether the cell is the right half of a wide glyph.
func (c Cell) IsPlaceholder() bool { return c.Width == 0 }

// String returns the grapheme cluster stored in the cell.
func (c Cell) String() string {
	var b strings.Builder
	for _, r := range c.Chars {
		if r == 0 {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// appendRune adds a combining code point to the cluster. It reports false
// when the cell is already full.
func (c *Cell) appendRune(r rune) bool {
	for i := range c.Chars {
		if c.Chars[i] == 0 {
			c.Chars[i] = r
			return true
		}
	}
	return false
}
