// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Part of VTerm terminal emulator.

package parser

import (
	"strconv"
	"strings"
)

// handleSGR processes SGR escape sequences. colon marks parameters that
// were introduced by ':' (sub-parameters of the preceding one).
func (v *VTerm) handleSGR(params []int, colon []bool) {
	if len(params) == 0 {
		params = []int{0}
		colon = []bool{false}
	}
	isSub := func(i int) bool { return i < len(colon) && colon[i] }

	for i := 0; i < len(params); i++ {
		p := params[i]
		// Gather the ':' sub-parameters following p.
		j := i + 1
		for j < len(params) && isSub(j) {
			j++
		}
		sub := params[i+1 : j]

		switch {
		case p == 0:
			v.ResetAttributes()
		case p == 1:
			v.SetAttribute(AttrBold)
		case p == 3:
			v.SetAttribute(AttrItalic)
		case p == 4:
			if len(sub) > 0 && sub[0] == 0 {
				v.ClearAttribute(AttrUnderline)
			} else {
				v.SetAttribute(AttrUnderline)
			}
		case p == 5 || p == 6:
			v.SetAttribute(AttrBlink)
		case p == 7:
			v.SetAttribute(AttrReverse)
		case p == 8:
			v.SetAttribute(AttrConceal)
		case p == 9:
			v.SetAttribute(AttrStrike)
		case p == 21:
			v.SetAttribute(AttrUnderline)
		case p == 22:
			v.ClearAttribute(AttrBold)
		case p == 23:
			v.ClearAttribute(AttrItalic)
		case p == 24:
			v.ClearAttribute(AttrUnderline)
		case p == 25:
			v.ClearAttribute(AttrBlink)
		case p == 27:
			v.ClearAttribute(AttrReverse)
		case p == 28:
			v.ClearAttribute(AttrConceal)
		case p == 29:
			v.ClearAttribute(AttrStrike)
		case p >= 30 && p <= 37:
			v.pen.FG = IndexedColor(uint8(p - 30))
		case p == 38, p == 48:
			var c Color
			var ok bool
			if len(sub) > 0 {
				c, ok = extendedColor(sub, true)
			} else {
				var used int
				c, used, ok = extendedColorSemicolon(params[i+1:])
				j = i + 1 + used
			}
			if ok {
				if p == 38 {
					v.pen.FG = c
				} else {
					v.pen.BG = c
				}
			}
		case p == 39:
			v.pen.FG = DefaultColor
		case p >= 40 && p <= 47:
			v.pen.BG = IndexedColor(uint8(p - 40))
		case p == 49:
			v.pen.BG = DefaultColor
		case p >= 90 && p <= 97: // Bright foreground
			v.pen.FG = IndexedColor(uint8(p - 90 + 8))
		case p >= 100 && p <= 107: // Bright background
			v.pen.BG = IndexedColor(uint8(p - 100 + 8))
		default:
			v.logDebug("Parser: Unhandled SGR %d", p)
		}
		i = j - 1
	}
}

// extendedColor parses the colon form "5:n", "2:r:g:b" or "2:cs:r:g:b".
func extendedColor(sub []int, colonForm bool) (Color, bool) {
	switch sub[0] {
	case 5:
		if len(sub) >= 2 {
			return IndexedColor(uint8(clamp(sub[1], 0, 255))), true
		}
	case 2:
		rgb := sub[1:]
		if colonForm && len(rgb) >= 4 {
			rgb = rgb[1:] // skip the color-space id
		}
		if len(rgb) >= 3 {
			return RGBColor(uint8(clamp(rgb[0], 0, 255)), uint8(clamp(rgb[1], 0, 255)), uint8(clamp(rgb[2], 0, 255))), true
		}
	}
	return Color{}, false
}

// extendedColorSemicolon parses "5;n" or "2;r;g;b" and reports how many
// parameters it consumed.
func extendedColorSemicolon(rest []int) (Color, int, bool) {
	if len(rest) == 0 {
		return Color{}, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) >= 2 {
			c, ok := extendedColor(rest[:2], false)
			return c, 2, ok
		}
	case 2:
		if len(rest) >= 4 {
			c, ok := extendedColor(rest[:4], false)
			return c, 4, ok
		}
	}
	return Color{}, len(rest), false
}

// SetAttribute sets a text attribute.
func (v *VTerm) SetAttribute(a Attribute) { v.pen.Attr |= a }

// ClearAttribute clears a text attribute.
func (v *VTerm) ClearAttribute(a Attribute) { v.pen.Attr &^= a }

// ResetAttributes resets all text attributes and colors to defaults.
func (v *VTerm) ResetAttributes() {
	v.pen = Pen{FG: DefaultColor, BG: DefaultColor}
}

// sgrString renders the pen as SGR parameters, as reported by DECRQSS.
func (p Pen) sgrString() string {
	parts := []string{"0"}
	codes := []struct {
		attr Attribute
		code string
	}{
		{AttrBold, "1"}, {AttrItalic, "3"}, {AttrUnderline, "4"}, {AttrBlink, "5"},
		{AttrReverse, "7"}, {AttrConceal, "8"}, {AttrStrike, "9"},
	}
	for _, c := range codes {
		if p.Attr&c.attr != 0 {
			parts = append(parts, c.code)
		}
	}
	parts = appendColorParams(parts, p.FG, 30, 90, 38)
	parts = appendColorParams(parts, p.BG, 40, 100, 48)
	return strings.Join(parts, ";")
}

func appendColorParams(parts []string, c Color, base, brightBase, extended int) []string {
	switch c.Mode {
	case ColorModeIndexed:
		switch {
		case c.Index < 8:
			return append(parts, strconv.Itoa(base+int(c.Index)))
		case c.Index < 16:
			return append(parts, strconv.Itoa(brightBase+int(c.Index)-8))
		default:
			return append(parts, strconv.Itoa(extended), "5", strconv.Itoa(int(c.Index)))
		}
	case ColorModeRGB:
		return append(parts, strconv.Itoa(extended), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}
	return parts
}
