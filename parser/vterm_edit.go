// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_edit.go
// Summary: Character and line editing - ICH, DCH, IL, DL, REP.
// Usage: Part of VTerm terminal emulator.

package parser

// InsertCharacters inserts n blank cells at the cursor (ICH).
func (v *VTerm) InsertCharacters(n int) {
	v.wrapNext = false
	v.lastPrintValid = false
	row, col := v.cursorRow, v.cursorCol
	v.screen.InsertCells(row, col, n, v.pen.BG)
	v.damageCells(row, max(col-1, 0), v.cols)
}

// DeleteCharacters deletes n cells at the cursor (DCH).
func (v *VTerm) DeleteCharacters(n int) {
	v.wrapNext = false
	v.lastPrintValid = false
	row, col := v.cursorRow, v.cursorCol
	v.screen.DeleteCells(row, col, n, v.pen.BG)
	v.damageCells(row, max(col-1, 0), v.cols)
}

// InsertLines inserts n blank lines at the cursor row (IL). Has no effect
// outside the scrolling region.
func (v *VTerm) InsertLines(n int) {
	if v.cursorRow < v.marginTop || v.cursorRow > v.marginBottom {
		return
	}
	v.scrollRows(-n, v.cursorRow, v.marginBottom)
	v.setCursorCol(0)
}

// DeleteLines deletes n lines at the cursor row (DL). Has no effect
// outside the scrolling region.
func (v *VTerm) DeleteLines(n int) {
	if v.cursorRow < v.marginTop || v.cursorRow > v.marginBottom {
		return
	}
	v.scrollRows(n, v.cursorRow, v.marginBottom)
	v.setCursorCol(0)
}

// RepeatCharacter prints the last graphic character n more times (REP).
func (v *VTerm) RepeatCharacter(n int) {
	if v.lastGraphic == 0 {
		return
	}
	r := v.lastGraphic
	for i := 0; i < n && i < v.rows*v.cols; i++ {
		// Already translated through the charset when first printed.
		v.placeRaw(r)
	}
}
