// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/screen.go
// Summary: Screen grid - a fixed rows x cols buffer of cells.
// Usage: VTerm owns a primary and an alternate Screen.
// Notes: Bounds are fixed between resizes; out-of-range access is rejected.

package parser

// Screen is a rows x cols matrix of cells with a per-row soft-wrap flag.
type Screen struct {
	rows, cols int
	cells      [][]Cell
	wrapped    []bool // row continues on the next row
}

// NewScreen allocates a blank screen.
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.cells = make([][]Cell, rows)
	for i := range s.cells {
		s.cells[i] = blankRow(cols, DefaultColor)
	}
	s.wrapped = make([]bool, rows)
	return s
}

func blankRow(cols int, bg Color) []Cell {
	row := make([]Cell, cols)
	blank := blankCell(bg)
	for i := range row {
		row[i] = blank
	}
	return row
}

func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

func (s *Screen) inBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// Cell returns the cell at (row, col) and false when out of bounds.
func (s *Screen) Cell(row, col int) (Cell, bool) {
	if !s.inBounds(row, col) {
		return Cell{}, false
	}
	return s.cells[row][col], true
}

// SetCell writes a cell; it reports false when out of bounds.
func (s *Screen) SetCell(row, col int, c Cell) bool {
	if !s.inBounds(row, col) {
		return false
	}
	s.cells[row][col] = c
	return true
}

// Row returns a copy of one row.
func (s *Screen) Row(row int) ([]Cell, bool) {
	if row < 0 || row >= s.rows {
		return nil, false
	}
	return append([]Cell(nil), s.cells[row]...), true
}

// Wrapped reports whether the row soft-wraps into the next one.
func (s *Screen) Wrapped(row int) bool {
	return row >= 0 && row < s.rows && s.wrapped[row]
}

func (s *Screen) setWrapped(row int, w bool) {
	if row >= 0 && row < s.rows {
		s.wrapped[row] = w
	}
}

// Clear blanks every cell.
func (s *Screen) Clear(bg Color) {
	s.Erase(Rect{EndRow: s.rows, EndCol: s.cols}, bg)
}

// Erase blanks the cells inside r, clipped to the grid. Wide glyphs cut in
// half at the edges are erased completely.
func (s *Screen) Erase(r Rect, bg Color) {
	r = s.clip(r)
	if r.Empty() {
		return
	}
	blank := blankCell(bg)
	for row := r.StartRow; row < r.EndRow; row++ {
		s.breakWide(row, r.StartCol, bg)
		s.breakWide(row, r.EndCol, bg)
		line := s.cells[row]
		for col := r.StartCol; col < r.EndCol; col++ {
			line[col] = blank
		}
		if r.StartCol == 0 && r.EndCol == s.cols {
			s.wrapped[row] = false
		}
	}
}

// breakWide blanks both halves of a wide glyph straddling the boundary
// just before col.
func (s *Screen) breakWide(row, col int, bg Color) {
	if col <= 0 || col >= s.cols {
		return
	}
	line := s.cells[row]
	if line[col].Width == 0 && line[col-1].Width == 2 {
		line[col-1] = blankCell(bg)
		line[col] = blankCell(bg)
	}
}

func (s *Screen) clip(r Rect) Rect {
	r.StartRow = max(r.StartRow, 0)
	r.StartCol = max(r.StartCol, 0)
	r.EndRow = min(r.EndRow, s.rows)
	r.EndCol = min(r.EndCol, s.cols)
	return r
}

// ScrollUp moves rows [top, bottom] up by n, filling the bottom with blanks.
func (s *Screen) ScrollUp(top, bottom, n int, bg Color) {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	for row := top; row <= bottom-n; row++ {
		s.cells[row], s.cells[row+n] = s.cells[row+n], s.cells[row]
		s.wrapped[row] = s.wrapped[row+n]
	}
	for row := bottom - n + 1; row <= bottom; row++ {
		s.cells[row] = blankRow(s.cols, bg)
		s.wrapped[row] = false
	}
}

// ScrollDown moves rows [top, bottom] down by n, filling the top with blanks.
func (s *Screen) ScrollDown(top, bottom, n int, bg Color) {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	for row := bottom; row >= top+n; row-- {
		s.cells[row], s.cells[row-n] = s.cells[row-n], s.cells[row]
		s.wrapped[row] = s.wrapped[row-n]
	}
	for row := top; row < top+n; row++ {
		s.cells[row] = blankRow(s.cols, bg)
		s.wrapped[row] = false
	}
}

// InsertCells shifts cells at and right of col by n, dropping what falls
// off the right edge.
func (s *Screen) InsertCells(row, col, n int, bg Color) {
	if !s.inBounds(row, col) || n <= 0 {
		return
	}
	s.breakWide(row, col, bg)
	line := s.cells[row]
	if n > s.cols-col {
		n = s.cols - col
	}
	copy(line[col+n:], line[col:s.cols-n])
	blank := blankCell(bg)
	for i := col; i < col+n; i++ {
		line[i] = blank
	}
	if line[s.cols-1].Width == 2 {
		line[s.cols-1] = blank
	}
	s.wrapped[row] = false
}

// DeleteCells removes n cells at col, shifting the rest left and filling
// the right edge with blanks.
func (s *Screen) DeleteCells(row, col, n int, bg Color) {
	if !s.inBounds(row, col) || n <= 0 {
		return
	}
	if n > s.cols-col {
		n = s.cols - col
	}
	s.breakWide(row, col, bg)
	s.breakWide(row, col+n, bg)
	line := s.cells[row]
	copy(line[col:], line[col+n:])
	blank := blankCell(bg)
	for i := s.cols - n; i < s.cols; i++ {
		line[i] = blank
	}
	s.wrapped[row] = false
}

// Fill writes r into every cell with default rendition (DECALN).
func (s *Screen) Fill(r rune) {
	for row := range s.cells {
		for col := range s.cells[row] {
			c := blankCell(DefaultColor)
			c.Chars[0] = r
			s.cells[row][col] = c
		}
		s.wrapped[row] = false
	}
}

// Resize truncates or pads the grid. When rows shrink, dropTop rows are
// removed from the top first and any excess from the bottom.
func (s *Screen) Resize(rows, cols, dropTop int) {
	if dropTop < 0 {
		dropTop = 0
	}
	if dropTop > s.rows {
		dropTop = s.rows
	}
	oldCells := s.cells[dropTop:]
	oldWrapped := s.wrapped[dropTop:]

	cells := make([][]Cell, rows)
	wrapped := make([]bool, rows)
	for row := 0; row < rows; row++ {
		if row >= len(oldCells) {
			cells[row] = blankRow(cols, DefaultColor)
			continue
		}
		line := oldCells[row]
		newLine := blankRow(cols, DefaultColor)
		copy(newLine, line)
		if cols < len(line) {
			// A wide glyph cut at the new edge loses its placeholder.
			if newLine[cols-1].Width == 2 {
				newLine[cols-1] = blankCell(DefaultColor)
			}
		} else {
			wrapped[row] = oldWrapped[row]
		}
		cells[row] = newLine
	}
	s.rows, s.cols = rows, cols
	s.cells = cells
	s.wrapped = wrapped
}

// Text returns the screen as newline-separated rows with trailing blanks
// trimmed. Placeholders are skipped and empty cells render as spaces.
func (s *Screen) Text() string {
	out := make([]byte, 0, s.rows*(s.cols+1))
	for row := 0; row < s.rows; row++ {
		out = append(out, s.RowText(row)...)
		if row < s.rows-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// RowText returns one row as text with trailing blanks trimmed.
func (s *Screen) RowText(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	var buf []rune
	end := 0
	for _, c := range s.cells[row] {
		if c.Width == 0 {
			continue
		}
		if c.IsBlank() {
			buf = append(buf, ' ')
			continue
		}
		for _, r := range c.Chars {
			if r == 0 {
				break
			}
			buf = append(buf, r)
		}
		end = len(buf)
	}
	return string(buf[:end])
}
