// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/testharness_test.go
// Summary: Test harness for VTerm control sequence testing.
// Usage: Used by test files to send sequences and verify screen state.
// Notes: Coordinates are (x, y) = (column, row), 0-based.

package parser

import (
	"fmt"
	"strings"
	"testing"
)

// TestHarness provides utilities for testing VTerm control sequences.
type TestHarness struct {
	vterm  *VTerm
	parser *Parser
}

// NewTestHarness creates a new test harness with specified terminal size.
func NewTestHarness(width, height int, opts ...Option) *TestHarness {
	vterm := NewVTerm(height, width, opts...)
	return &TestHarness{
		vterm:  vterm,
		parser: NewParser(vterm),
	}
}

// SendSeq feeds a control sequence string to the parser.
// Example: h.SendSeq("\x1b[5A") sends "cursor up 5"
func (h *TestHarness) SendSeq(seq string) {
	h.parser.Feed([]byte(seq))
}

// GetCell returns the cell at the specified position, or a zero Cell when
// out of bounds.
func (h *TestHarness) GetCell(x, y int) Cell {
	c, _ := h.vterm.Cell(y, x)
	return c
}

// GetCursor returns the current cursor position.
func (h *TestHarness) GetCursor() (x, y int) {
	row, col := h.vterm.Cursor()
	return col, row
}

func (h *TestHarness) GetSize() (width, height int) {
	return h.vterm.Cols(), h.vterm.Rows()
}

// AssertRune verifies that a cell holds the expected base rune.
func (h *TestHarness) AssertRune(t *testing.T, x, y int, expectedRune rune) {
	t.Helper()
	actual := h.GetCell(x, y)
	if actual.Rune() != expectedRune {
		t.Errorf("Cell[%d,%d] rune: expected %q, got %q", x, y, expectedRune, actual.Rune())
	}
}

// AssertText verifies a run of single-width cells matches expected text.
func (h *TestHarness) AssertText(t *testing.T, x, y int, expectedText string) {
	t.Helper()
	for i, expectedRune := range []rune(expectedText) {
		h.AssertRune(t, x+i, y, expectedRune)
	}
}

// AssertCursor verifies the cursor is at the expected position.
func (h *TestHarness) AssertCursor(t *testing.T, expectedX, expectedY int) {
	t.Helper()
	actualX, actualY := h.GetCursor()
	if actualX != expectedX || actualY != expectedY {
		t.Errorf("Cursor position: expected (%d,%d), got (%d,%d)",
			expectedX, expectedY, actualX, actualY)
	}
}

// AssertBlank verifies that a cell is blank.
func (h *TestHarness) AssertBlank(t *testing.T, x, y int) {
	t.Helper()
	if actual := h.GetCell(x, y); !actual.IsBlank() {
		t.Errorf("Cell[%d,%d] should be blank, got %q", x, y, actual.Rune())
	}
}

// AssertLineBlank verifies an entire line is blank.
func (h *TestHarness) AssertLineBlank(t *testing.T, y int) {
	t.Helper()
	width, _ := h.GetSize()
	for x := 0; x < width; x++ {
		h.AssertBlank(t, x, y)
	}
}

// AssertLine verifies the trimmed text of a row.
func (h *TestHarness) AssertLine(t *testing.T, y int, expected string) {
	t.Helper()
	if got := h.vterm.Screen().RowText(y); got != expected {
		t.Errorf("Line %d: expected %q, got %q\n%s", y, expected, got, h.Dump())
	}
}

// Dump returns a visual representation of the screen for debugging,
// with the cursor marked by '['.
func (h *TestHarness) Dump() string {
	width, height := h.GetSize()
	cursorX, cursorY := h.GetCursor()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Terminal %dx%d (cursor at %d,%d)\n", width, height, cursorX, cursorY))
	sb.WriteString(strings.Repeat("=", width) + "\n")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := h.GetCell(x, y)
			switch {
			case x == cursorX && y == cursorY:
				sb.WriteString("[")
			case cell.IsBlank():
				sb.WriteString(" ")
			default:
				sb.WriteRune(cell.Rune())
			}
		}
		wrapped := ""
		if h.vterm.Screen().Wrapped(y) {
			wrapped = " (wrapped)"
		}
		sb.WriteString(fmt.Sprintf(" |%d%s\n", y, wrapped))
	}
	sb.WriteString(strings.Repeat("=", width) + "\n")
	return sb.String()
}

// Output drains the replies the terminal queued for the child.
func (h *TestHarness) Output() string {
	return string(h.vterm.ReadOutput())
}
