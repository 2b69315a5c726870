// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_erase.go
// Summary: Erase operations - ED, EL, ECH and the DECALN fill.
// Usage: Part of VTerm terminal emulator.
// Notes: Erased cells take the current background (BCE).

package parser

// ClearScreenMode erases in display (ED).
//
//	0: cursor to end of screen
//	1: start of screen to cursor
//	2: entire screen
//	3: entire screen (no scrollback is kept)
func (v *VTerm) ClearScreenMode(mode int) {
	v.wrapNext = false
	v.lastPrintValid = false
	row, col := v.cursorRow, v.cursorCol
	switch mode {
	case 0:
		v.eraseRect(Rect{StartRow: row, StartCol: col, EndRow: row + 1, EndCol: v.cols})
		v.eraseRect(Rect{StartRow: row + 1, StartCol: 0, EndRow: v.rows, EndCol: v.cols})
	case 1:
		v.eraseRect(Rect{StartRow: 0, StartCol: 0, EndRow: row, EndCol: v.cols})
		v.eraseRect(Rect{StartRow: row, StartCol: 0, EndRow: row + 1, EndCol: col + 1})
	case 2, 3:
		v.eraseRect(Rect{StartRow: 0, StartCol: 0, EndRow: v.rows, EndCol: v.cols})
	}
}

// ClearLine erases in line (EL).
//
//	0: cursor to end of line
//	1: start of line to cursor
//	2: entire line
func (v *VTerm) ClearLine(mode int) {
	v.wrapNext = false
	v.lastPrintValid = false
	row, col := v.cursorRow, v.cursorCol
	switch mode {
	case 0:
		v.eraseRect(Rect{StartRow: row, StartCol: col, EndRow: row + 1, EndCol: v.cols})
	case 1:
		v.eraseRect(Rect{StartRow: row, StartCol: 0, EndRow: row + 1, EndCol: col + 1})
	case 2:
		v.eraseRect(Rect{StartRow: row, StartCol: 0, EndRow: row + 1, EndCol: v.cols})
	}
}

// EraseCharacters blanks n cells from the cursor without shifting (ECH).
func (v *VTerm) EraseCharacters(n int) {
	v.wrapNext = false
	v.lastPrintValid = false
	row, col := v.cursorRow, v.cursorCol
	v.eraseRect(Rect{StartRow: row, StartCol: col, EndRow: row + 1, EndCol: min(col+n, v.cols)})
}

func (v *VTerm) eraseRect(r Rect) {
	r = v.screen.clip(r)
	if r.Empty() {
		return
	}
	// breakWide may clear one extra cell on either side.
	grown := Rect{StartRow: r.StartRow, StartCol: max(r.StartCol-1, 0), EndRow: r.EndRow, EndCol: min(r.EndCol+1, v.cols)}
	v.screen.Erase(r, v.pen.BG)
	v.damageRect(grown)
}

// DECALN fills the screen with 'E', resets margins and homes the cursor.
func (v *VTerm) DECALN() {
	v.screen.Fill('E')
	v.resetMargins()
	v.lastPrintValid = false
	v.SetCursorPos(0, 0)
	v.damageAll()
}
