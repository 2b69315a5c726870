// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_reset.go
// Summary: Hard reset (RIS), soft reset (DECSTR) and host screen resets.
// Usage: Part of VTerm terminal emulator.

package parser

// ResetScreen clears every cell of the active screen with the default pen.
// A hard reset additionally performs a full terminal reset; a soft one
// keeps the cursor, margins and modes.
func (v *VTerm) ResetScreen(hard bool) {
	if hard {
		v.Reset()
		return
	}
	v.ResetAttributes()
	v.wrapNext = false
	v.lastPrintValid = false
	v.screen.Clear(DefaultColor)
	v.damageAll()
}

// Reset brings the terminal to its initial state (RIS).
func (v *VTerm) Reset() {
	v.switchScreen(false, false)
	v.primary.Clear(DefaultColor)
	v.alt.Clear(DefaultColor)
	v.ResetAttributes()
	v.resetMargins()
	v.resetTabStops()
	v.savedMain = savedCursor{}
	v.savedAlt = savedCursor{}
	v.charsets = [4]Charset{}
	v.activeCharset = 0
	v.singleShift = -1
	v.appCursorKeys = false
	v.appKeypad = false
	v.autoWrapMode = true
	v.originMode = false
	v.insertMode = false
	v.newlineMode = false
	v.reverseScreen = false
	v.bracketedPaste = false
	v.focusReporting = false
	v.mouse = mouseState{}
	v.cursorShape = CursorBlock
	v.cursorBlink = true
	v.wrapNext = false
	v.lastPrintValid = false
	v.lastGraphic = 0
	if v.title != "" || v.iconName != "" {
		v.setTitle("")
		v.setIconName("")
	}
	v.SetCursorPos(0, 0)
	v.SetCursorVisible(true)
	v.damageAll()
}

// SoftReset (DECSTR) performs a soft terminal reset.
// Unlike RIS, DECSTR does not clear the screen or move the cursor.
// It resets modes, margins, rendition and saved state to defaults.
func (v *VTerm) SoftReset() {
	v.insertMode = false
	v.originMode = false
	v.autoWrapMode = true
	v.appCursorKeys = false
	v.appKeypad = false
	v.charsets = [4]Charset{}
	v.activeCharset = 0
	v.singleShift = -1
	v.resetMargins()
	v.ResetAttributes()
	v.savedMain = savedCursor{}
	v.savedAlt = savedCursor{}
	v.SetCursorVisible(true)
}
