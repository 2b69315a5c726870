// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_resize.go
// Summary: Resizing the screens, with optional reflow of the primary one.
// Usage: Part of VTerm terminal emulator.

package parser

// Resize handles changes to the terminal's dimensions. Both screens are
// resized; the cursor is kept on its line where possible and clamped.
func (v *VTerm) Resize(rows, cols int) {
	if rows == v.rows && cols == v.cols {
		return
	}
	oldRows, oldCols := v.rows, v.cols
	oldCursor := Pos{Row: v.cursorRow, Col: v.cursorCol}

	// Keep the cursor line on screen by dropping rows from the top first.
	dropTop := 0
	if v.cursorRow >= rows {
		dropTop = v.cursorRow - rows + 1
	}

	var primaryCursor Pos
	if v.reflow && cols != oldCols {
		primaryCursor = reflowScreen(v.primary, rows, cols, v.mainCursor())
	} else {
		mc := v.mainCursor()
		drop := 0
		if mc.Row >= rows {
			drop = mc.Row - rows + 1
		}
		v.primary.Resize(rows, cols, drop)
		primaryCursor = Pos{Row: mc.Row - drop, Col: mc.Col}
	}

	if v.inAltScreen {
		v.alt.Resize(rows, cols, dropTop)
		v.cursorRow -= dropTop
		v.savedMain.row = primaryCursor.Row
		v.savedMain.col = primaryCursor.Col
	} else {
		v.alt.Resize(rows, cols, 0)
		v.cursorRow, v.cursorCol = primaryCursor.Row, primaryCursor.Col
	}

	v.rows, v.cols = rows, cols
	v.cursorRow = clamp(v.cursorRow, 0, rows-1)
	v.cursorCol = clamp(v.cursorCol, 0, cols-1)
	if v.savedMain.valid {
		v.savedMain.row = clamp(v.savedMain.row, 0, rows-1)
		v.savedMain.col = clamp(v.savedMain.col, 0, cols-1)
	}
	if v.savedAlt.valid {
		v.savedAlt.row = clamp(v.savedAlt.row, 0, rows-1)
		v.savedAlt.col = clamp(v.savedAlt.col, 0, cols-1)
	}

	// Reset margins on resize without moving the cursor.
	v.resetMargins()
	v.resizeTabStops(oldCols)
	v.wrapNext = false
	v.lastPrintValid = false

	v.logDebug("Parser: resize %dx%d -> %dx%d", oldRows, oldCols, rows, cols)
	v.damageAll()
	if newPos := (Pos{Row: v.cursorRow, Col: v.cursorCol}); newPos != oldCursor {
		v.damage.MoveCursor(oldCursor, newPos, v.cursorVisible)
	}
}

// mainCursor is where the cursor sits on the primary screen: the live
// cursor, or the saved one while the alternate screen is active.
func (v *VTerm) mainCursor() Pos {
	if v.inAltScreen {
		return Pos{Row: v.savedMain.row, Col: v.savedMain.col}
	}
	return Pos{Row: v.cursorRow, Col: v.cursorCol}
}

func (v *VTerm) resizeTabStops(oldCols int) {
	stops := make([]bool, v.cols)
	copy(stops, v.tabStops)
	for i := oldCols; i < v.cols; i++ {
		stops[i] = i%8 == 0
	}
	v.tabStops = stops
}

// reflowScreen rewraps soft-wrapped rows of s to the new width and returns
// the cursor's new position.
func reflowScreen(s *Screen, rows, cols int, cursor Pos) Pos {
	type logicalLine struct {
		cells     []Cell
		cursorOff int // cursor offset into cells, -1 when not on this line
	}

	var lines []logicalLine
	current := logicalLine{cursorOff: -1}
	for row := 0; row < s.rows; row++ {
		line := s.cells[row]
		if row == cursor.Row {
			current.cursorOff = len(current.cells) + cursor.Col
		}
		if s.wrapped[row] {
			current.cells = append(current.cells, line...)
			continue
		}
		end := len(line)
		for end > 0 && line[end-1].IsBlank() && line[end-1].Width != 0 && line[end-1].BG.IsDefault() {
			end--
		}
		current.cells = append(current.cells, line[:end]...)
		lines = append(lines, current)
		current = logicalLine{cursorOff: -1}
	}
	if len(current.cells) > 0 || current.cursorOff >= 0 {
		lines = append(lines, current)
	}

	type physRow struct {
		cells   []Cell
		wrapped bool
	}
	var out []physRow
	newCursor := Pos{}
	for _, l := range lines {
		if cols < 2 {
			l.cells, l.cursorOff = narrowWide(l.cells, l.cursorOff)
		}
		cells := l.cells
		offset := 0
		placed := false
		for {
			n := min(cols, len(cells))
			// Do not split a wide glyph from its placeholder.
			if n < len(cells) && n > 0 && cells[n-1].Width == 2 {
				n--
			}
			if n == 0 && len(cells) > 0 {
				n = 1
			}
			rowCells := blankRow(cols, DefaultColor)
			copy(rowCells, cells[:n])
			more := n < len(cells)
			if !placed && l.cursorOff >= 0 && (l.cursorOff < offset+n || !more) {
				col := l.cursorOff - offset
				if col >= cols {
					col = cols - 1
				}
				newCursor = Pos{Row: len(out), Col: max(col, 0)}
				placed = true
			}
			out = append(out, physRow{cells: rowCells, wrapped: more})
			cells = cells[n:]
			offset += n
			if !more {
				break
			}
		}
	}

	// Trim blank rows below the cursor before dropping rows from the top.
	for len(out) > rows && len(out)-1 > newCursor.Row && isBlankRow(out[len(out)-1].cells) {
		out = out[:len(out)-1]
	}
	drop := 0
	if len(out) > rows {
		drop = len(out) - rows
		out = out[drop:]
	}
	newCursor.Row -= drop
	if newCursor.Row < 0 {
		newCursor = Pos{}
	}

	s.rows, s.cols = rows, cols
	s.cells = make([][]Cell, rows)
	s.wrapped = make([]bool, rows)
	for i := 0; i < rows; i++ {
		if i < len(out) {
			s.cells[i] = out[i].cells
			s.wrapped[i] = out[i].wrapped
			continue
		}
		s.cells[i] = blankRow(cols, DefaultColor)
	}
	return newCursor
}

// narrowWide demotes wide glyphs to width 1 and drops their placeholders,
// for grids too narrow to hold a wide glyph. cursorOff is remapped.
func narrowWide(cells []Cell, cursorOff int) ([]Cell, int) {
	out := make([]Cell, 0, len(cells))
	newOff := cursorOff
	for i, c := range cells {
		if c.Width == 0 && i > 0 && cells[i-1].Width == 2 {
			if cursorOff >= i {
				newOff--
			}
			continue
		}
		if c.Width == 2 {
			c.Width = 1
		}
		out = append(out, c)
	}
	return out, newOff
}

func isBlankRow(cells []Cell) bool {
	for _, c := range cells {
		if !c.IsBlank() || c.Width == 0 {
			return false
		}
	}
	return true
}
