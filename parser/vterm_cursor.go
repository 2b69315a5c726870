// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_cursor.go
// Summary: Cursor operations - position, movement, tabs, visibility, save/restore.
// Usage: Part of VTerm terminal emulator.

package parser

// SetCursorPos moves the cursor to the specified position, clamping to valid bounds.
func (v *VTerm) SetCursorPos(row, col int) {
	row = clamp(row, 0, v.rows-1)
	col = clamp(col, 0, v.cols-1)
	v.wrapNext = false
	if row == v.cursorRow && col == v.cursorCol {
		return
	}
	old := Pos{Row: v.cursorRow, Col: v.cursorCol}
	v.cursorRow, v.cursorCol = row, col
	v.damage.MoveCursor(old, Pos{Row: row, Col: col}, v.cursorVisible)
}

// setCursorCol moves within the current row without touching wrapNext.
func (v *VTerm) setCursorCol(col int) {
	col = clamp(col, 0, v.cols-1)
	if col == v.cursorCol {
		return
	}
	old := Pos{Row: v.cursorRow, Col: v.cursorCol}
	v.cursorCol = col
	v.damage.MoveCursor(old, Pos{Row: v.cursorRow, Col: col}, v.cursorVisible)
}

func (v *VTerm) setCursorRow(row int) {
	row = clamp(row, 0, v.rows-1)
	if row == v.cursorRow {
		return
	}
	old := Pos{Row: v.cursorRow, Col: v.cursorCol}
	v.cursorRow = row
	v.damage.MoveCursor(old, Pos{Row: row, Col: v.cursorCol}, v.cursorVisible)
}

// SetCursorVisible sets the cursor visibility state.
func (v *VTerm) SetCursorVisible(visible bool) {
	if v.cursorVisible == visible {
		return
	}
	v.cursorVisible = visible
	pos := Pos{Row: v.cursorRow, Col: v.cursorCol}
	v.damage.MoveCursor(pos, pos, visible)
}

// MoveCursorUp stops at the top margin when starting inside the region.
func (v *VTerm) MoveCursorUp(n int) {
	top := 0
	if v.cursorRow >= v.marginTop {
		top = v.marginTop
	}
	v.SetCursorPos(max(v.cursorRow-n, top), v.cursorCol)
}

// MoveCursorDown stops at the bottom margin when starting inside the region.
func (v *VTerm) MoveCursorDown(n int) {
	bottom := v.rows - 1
	if v.cursorRow <= v.marginBottom {
		bottom = v.marginBottom
	}
	v.SetCursorPos(min(v.cursorRow+n, bottom), v.cursorCol)
}

func (v *VTerm) MoveCursorForward(n int) {
	v.SetCursorPos(v.cursorRow, v.cursorCol+n)
}

func (v *VTerm) MoveCursorBackward(n int) {
	v.wrapNext = false
	v.SetCursorPos(v.cursorRow, v.cursorCol-n)
}

// CarriageReturn moves to column 0.
func (v *VTerm) CarriageReturn() {
	v.wrapNext = false
	v.setCursorCol(0)
}

// Backspace moves one column left and cancels a pending wrap.
func (v *VTerm) Backspace() {
	v.wrapNext = false
	v.setCursorCol(v.cursorCol - 1)
}

// Tab advances to the next tab stop or the last column.
func (v *VTerm) Tab() { v.TabForward(1) }

// TabForward moves forward n tab stops (CHT).
func (v *VTerm) TabForward(n int) {
	col := v.cursorCol
	for ; n > 0; n-- {
		col++
		for col < v.cols-1 && !v.tabStops[col] {
			col++
		}
		if col >= v.cols-1 {
			col = v.cols - 1
			break
		}
	}
	v.wrapNext = false
	v.setCursorCol(col)
}

// TabBackward moves back n tab stops (CBT).
func (v *VTerm) TabBackward(n int) {
	col := v.cursorCol
	for ; n > 0 && col > 0; n-- {
		col--
		for col > 0 && !v.tabStops[col] {
			col--
		}
	}
	v.wrapNext = false
	v.setCursorCol(col)
}

// SetTabStop sets a tab stop at the cursor column (HTS).
func (v *VTerm) SetTabStop() {
	if v.cursorCol < len(v.tabStops) {
		v.tabStops[v.cursorCol] = true
	}
}

// ClearTabStop clears the stop at the cursor (mode 0) or all stops (mode 3).
func (v *VTerm) ClearTabStop(mode int) {
	switch mode {
	case 0:
		if v.cursorCol < len(v.tabStops) {
			v.tabStops[v.cursorCol] = false
		}
	case 3:
		for i := range v.tabStops {
			v.tabStops[i] = false
		}
	}
}

// SaveCursor saves the cursor, pen and charset state for the active screen.
func (v *VTerm) SaveCursor() {
	saved := savedCursor{
		row:           v.cursorRow,
		col:           v.cursorCol,
		pen:           v.pen,
		charsets:      v.charsets,
		activeCharset: v.activeCharset,
		originMode:    v.originMode,
		autoWrap:      v.autoWrapMode,
		valid:         true,
	}
	if v.inAltScreen {
		v.savedAlt = saved
	} else {
		v.savedMain = saved
	}
}

// RestoreCursor restores the state saved by SaveCursor. Without a saved
// state the cursor goes home and the rendition is reset.
func (v *VTerm) RestoreCursor() {
	saved := v.savedMain
	if v.inAltScreen {
		saved = v.savedAlt
	}
	v.wrapNext = false
	if !saved.valid {
		v.originMode = false
		v.ResetAttributes()
		v.SetCursorPos(0, 0)
		return
	}
	v.pen = saved.pen
	v.charsets = saved.charsets
	v.activeCharset = saved.activeCharset
	v.originMode = saved.originMode
	v.autoWrapMode = saved.autoWrap
	v.SetCursorPos(saved.row, saved.col)
}

// originRow maps a row addressed by CUP/VPA into the grid, honoring DECOM.
func (v *VTerm) originRow(row int) int {
	if v.originMode {
		return clamp(row+v.marginTop, v.marginTop, v.marginBottom)
	}
	return row
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
