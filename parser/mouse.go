// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/mouse.go
// Summary: Mouse tracking modes and report encoding.
// Usage: The child selects a mode with DECSET; hosts report events through
//        VTerm.MouseMove and VTerm.MouseButton.

package parser

import (
	"fmt"
	"unicode/utf8"
)

// MouseMode is the tracking level requested by the child.
type MouseMode int

const (
	MouseNone  MouseMode = iota
	MouseX10             // 9: presses only, no modifiers
	MouseClick           // 1000: presses and releases
	MouseDrag            // 1002: plus motion while a button is held
	MouseMove            // 1003: plus all motion
)

// MouseEncoding is the report format.
type MouseEncoding int

const (
	MouseEncodingX10   MouseEncoding = iota // CSI M Cb Cx Cy, bytes offset by 32
	MouseEncodingUTF8                       // 1005: as X10, coordinates UTF-8 encoded
	MouseEncodingSGR                        // 1006: CSI < b;x;y M/m
	MouseEncodingURXVT                      // 1015: CSI b;x;y M
)

type mouseState struct {
	mode     MouseMode
	encoding MouseEncoding
	buttons  int // bit per held button 1-3
	row, col int
}

func (v *VTerm) setMouseMode(mode MouseMode, set bool) {
	if set {
		v.mouse.mode = mode
		return
	}
	if v.mouse.mode == mode {
		v.mouse.mode = MouseNone
	}
}

func (v *VTerm) setMouseEncoding(enc MouseEncoding, set bool) {
	if set {
		v.mouse.encoding = enc
		return
	}
	if v.mouse.encoding == enc {
		v.mouse.encoding = MouseEncodingX10
	}
}

// MouseMove records the pointer position and returns a motion report when
// the tracking mode asks for one.
func (v *VTerm) MouseMove(row, col int, mod Modifier) []byte {
	if row == v.mouse.row && col == v.mouse.col {
		return nil
	}
	v.mouse.row, v.mouse.col = row, col
	wantDrag := v.mouse.mode == MouseDrag && v.mouse.buttons != 0
	if !wantDrag && v.mouse.mode != MouseMove {
		return nil
	}
	button := 4
	switch {
	case v.mouse.buttons&0x1 != 0:
		button = 1
	case v.mouse.buttons&0x2 != 0:
		button = 2
	case v.mouse.buttons&0x4 != 0:
		button = 3
	}
	return encodeMouse(v.mouse.encoding, button-1+0x20, true, mod, row, col)
}

// MouseButton updates the held-button state and returns the report for a
// press or release. Buttons 1-3 are the usual buttons, 4-7 the wheel.
func (v *VTerm) MouseButton(button int, pressed bool, mod Modifier) []byte {
	old := v.mouse.buttons
	if button >= 1 && button <= 3 {
		if pressed {
			v.mouse.buttons |= 1 << (button - 1)
		} else {
			v.mouse.buttons &^= 1 << (button - 1)
		}
	}
	// Wheel buttons rarely report releases; plain buttons report on change only.
	if v.mouse.buttons == old && button < 4 {
		return nil
	}
	switch v.mouse.mode {
	case MouseNone:
		return nil
	case MouseX10:
		if !pressed {
			return nil
		}
		mod = 0
	}
	switch {
	case button >= 1 && button < 4:
		return encodeMouse(v.mouse.encoding, button-1, pressed, mod, v.mouse.row, v.mouse.col)
	case button >= 4 && button < 8:
		if !pressed {
			return nil
		}
		return encodeMouse(v.mouse.encoding, button-4+0x40, pressed, mod, v.mouse.row, v.mouse.col)
	}
	return nil
}

// encodeMouse renders one report. code is the button code before modifier
// bits (shift 4, alt 8, ctrl 16) are added.
func encodeMouse(enc MouseEncoding, code int, pressed bool, mod Modifier, row, col int) []byte {
	mods := int(mod&(ModShift|ModAlt|ModCtrl)) << 2
	switch enc {
	case MouseEncodingSGR:
		final := 'M'
		if !pressed {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code|mods, col+1, row+1, final))
	case MouseEncodingURXVT:
		if !pressed {
			code = 3
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", (code|mods)+0x20, col+1, row+1))
	case MouseEncodingUTF8:
		if !pressed {
			code = 3
		}
		out := []byte("\x1b[M")
		out = utf8.AppendRune(out, rune((code|mods)+0x20))
		out = utf8.AppendRune(out, rune(col+0x21))
		out = utf8.AppendRune(out, rune(row+0x21))
		return out
	default:
		if !pressed {
			code = 3
		}
		col = min(col, 0xff-0x21)
		row = min(row, 0xff-0x21)
		return []byte{0x1b, '[', 'M', byte((code | mods) + 0x20), byte(col + 0x21), byte(row + 0x21)}
	}
}
