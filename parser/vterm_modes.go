// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_modes.go
// Summary: ANSI and DEC private mode handling.
// Usage: Part of VTerm terminal emulator.

package parser

import "fmt"

// processANSIMode handles standard ANSI mode setting/resetting (SM/RM).
func (v *VTerm) processANSIMode(set bool, params []int) {
	for _, mode := range params {
		switch mode {
		case 4: // IRM - Insert/Replace Mode
			v.insertMode = set
		case 20: // LNM - Line Feed/New Line Mode
			v.newlineMode = set
		default:
			v.logDebug("Parser: Unhandled ANSI mode %d set=%v", mode, set)
		}
	}
}

// processPrivateMode handles DEC private modes (DECSET/DECRST).
func (v *VTerm) processPrivateMode(set bool, params []int) {
	for _, mode := range params {
		v.setPrivateMode(mode, set)
	}
}

func (v *VTerm) setPrivateMode(mode int, set bool) {
	switch mode {
	case 1: // DECCKM
		v.appCursorKeys = set
	case 5: // DECSCNM - Reverse video screen
		if v.reverseScreen != set {
			v.reverseScreen = set
			v.damageAll()
		}
	case 6: // DECOM - Origin Mode
		v.originMode = set
		if set {
			v.SetCursorPos(v.marginTop, 0)
		} else {
			v.SetCursorPos(0, 0)
		}
	case 7: // DECAWM
		v.autoWrapMode = set
		if !set {
			v.wrapNext = false
		}
	case 9:
		v.setMouseMode(MouseX10, set)
	case 12:
		v.cursorBlink = set
	case 25: // DECTCEM
		v.SetCursorVisible(set)
	case 47, 1047:
		v.switchScreen(set, mode == 1047 && set)
	case 1048:
		if set {
			v.SaveCursor()
		} else {
			v.RestoreCursor()
		}
	case 1049:
		if set {
			if v.inAltScreen {
				return
			}
			v.SaveCursor()
			v.switchScreen(true, true)
		} else {
			if !v.inAltScreen {
				return
			}
			v.switchScreen(false, false)
			v.RestoreCursor()
		}
	case 1000:
		v.setMouseMode(MouseClick, set)
	case 1002:
		v.setMouseMode(MouseDrag, set)
	case 1003:
		v.setMouseMode(MouseMove, set)
	case 1004:
		v.focusReporting = set
	case 1005:
		v.setMouseEncoding(MouseEncodingUTF8, set)
	case 1006:
		v.setMouseEncoding(MouseEncodingSGR, set)
	case 1015:
		v.setMouseEncoding(MouseEncodingURXVT, set)
	case 2004:
		v.bracketedPaste = set
	case 2026:
		// Synchronized output: damage is already batched until polled.
	default:
		v.logDebug("Parser: Unhandled private mode ?%d set=%v", mode, set)
	}
}

// privateModeState reports a DEC private mode for DECRQM: 1 set, 2 reset,
// 0 not recognized.
func (v *VTerm) privateModeState(mode int) int {
	var set bool
	switch mode {
	case 1:
		set = v.appCursorKeys
	case 5:
		set = v.reverseScreen
	case 6:
		set = v.originMode
	case 7:
		set = v.autoWrapMode
	case 9:
		set = v.mouse.mode == MouseX10
	case 12:
		set = v.cursorBlink
	case 25:
		set = v.cursorVisible
	case 47, 1047, 1049:
		set = v.inAltScreen
	case 1000:
		set = v.mouse.mode == MouseClick
	case 1002:
		set = v.mouse.mode == MouseDrag
	case 1003:
		set = v.mouse.mode == MouseMove
	case 1004:
		set = v.focusReporting
	case 1005:
		set = v.mouse.encoding == MouseEncodingUTF8
	case 1006:
		set = v.mouse.encoding == MouseEncodingSGR
	case 1015:
		set = v.mouse.encoding == MouseEncodingURXVT
	case 2004:
		set = v.bracketedPaste
	default:
		return 0
	}
	if set {
		return 1
	}
	return 2
}

func (v *VTerm) ansiModeState(mode int) int {
	var set bool
	switch mode {
	case 4:
		set = v.insertMode
	case 20:
		set = v.newlineMode
	default:
		return 0
	}
	if set {
		return 1
	}
	return 2
}

// reportMode answers DECRQM.
func (v *VTerm) reportMode(mode int, private bool) {
	if private {
		v.writeOutput([]byte(fmt.Sprintf("\x1b[?%d;%d$y", mode, v.privateModeState(mode))))
		return
	}
	v.writeOutput([]byte(fmt.Sprintf("\x1b[%d;%d$y", mode, v.ansiModeState(mode))))
}

// setCursorStyle handles DECSCUSR.
func (v *VTerm) setCursorStyle(ps int) {
	switch ps {
	case 0, 1:
		v.cursorShape, v.cursorBlink = CursorBlock, true
	case 2:
		v.cursorShape, v.cursorBlink = CursorBlock, false
	case 3:
		v.cursorShape, v.cursorBlink = CursorUnderline, true
	case 4:
		v.cursorShape, v.cursorBlink = CursorUnderline, false
	case 5:
		v.cursorShape, v.cursorBlink = CursorBar, true
	case 6:
		v.cursorShape, v.cursorBlink = CursorBar, false
	default:
		return
	}
	pos := Pos{Row: v.cursorRow, Col: v.cursorCol}
	v.damage.MoveCursor(pos, pos, v.cursorVisible)
}
