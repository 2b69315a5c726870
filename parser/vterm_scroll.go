// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_scroll.go
// Summary: Line feeds, index operations and scrolling within margins.
// Usage: Part of VTerm terminal emulator.

package parser

// LineFeed moves the cursor down one line, scrolling at the bottom margin.
func (v *VTerm) LineFeed() {
	v.wrapNext = false
	if v.cursorRow == v.marginBottom {
		v.scrollRegion(1)
		return
	}
	if v.cursorRow < v.rows-1 {
		v.setCursorRow(v.cursorRow + 1)
	}
}

// Index is LineFeed without the newline-mode carriage return (IND).
func (v *VTerm) Index() { v.LineFeed() }

// NextLine moves to the first column of the next line (NEL).
func (v *VTerm) NextLine() {
	v.LineFeed()
	v.setCursorCol(0)
}

// ReverseIndex moves the cursor up one line, scrolling down at the top margin (RI).
func (v *VTerm) ReverseIndex() {
	v.wrapNext = false
	if v.cursorRow == v.marginTop {
		v.scrollRegion(-1)
		return
	}
	if v.cursorRow > 0 {
		v.setCursorRow(v.cursorRow - 1)
	}
}

// scrollRegion scrolls the margin region up (n > 0) or down (n < 0).
func (v *VTerm) scrollRegion(n int) {
	v.scrollRows(n, v.marginTop, v.marginBottom)
}

// scrollRows scrolls rows [top, bottom] and damages them.
func (v *VTerm) scrollRows(n, top, bottom int) {
	if n == 0 || top > bottom {
		return
	}
	v.wrapNext = false
	v.lastPrintValid = false
	if n > 0 {
		v.screen.ScrollUp(top, bottom, n, v.pen.BG)
	} else {
		v.screen.ScrollDown(top, bottom, -n, v.pen.BG)
	}
	v.damageRows(top, bottom+1)
}

// ScrollUp scrolls the margin region up n lines (SU).
func (v *VTerm) ScrollUp(n int) { v.scrollRegion(n) }

// ScrollDown scrolls the margin region down n lines (SD).
func (v *VTerm) ScrollDown(n int) { v.scrollRegion(-n) }

// SetMargins sets the scrolling region (DECSTBM) from 1-based rows and
// homes the cursor. Invalid regions are ignored.
func (v *VTerm) SetMargins(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > v.rows {
		bottom = v.rows
	}
	if top >= bottom {
		return
	}
	v.marginTop = top - 1
	v.marginBottom = bottom - 1
	if v.originMode {
		v.SetCursorPos(v.marginTop, 0)
	} else {
		v.SetCursorPos(0, 0)
	}
}

func (v *VTerm) resetMargins() {
	v.marginTop = 0
	v.marginBottom = v.rows - 1
}
