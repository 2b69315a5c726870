// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/edit_test.go
// Summary: Erase, insert/delete and scrolling-region tests.

package parser

import "testing"

const fiveLines = "\x1b[1;1HA\x1b[2;1HB\x1b[3;1HC\x1b[4;1HD\x1b[5;1HE"

func TestEditing(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		seq   string
		lines []string
	}{
		{"ED 0", "abcdef\r\nghijkl", "\x1b[1;3H\x1b[J", []string{"ab", ""}},
		{"ED 1", "abcdef\r\nghijkl", "\x1b[2;3H\x1b[1J", []string{"", "   jkl"}},
		{"ED 2", "abcdef\r\nghijkl", "\x1b[2J", []string{"", ""}},
		{"ED 3", "abcdef\r\nghijkl", "\x1b[3J", []string{"", ""}},
		{"EL 0", "abcdef", "\x1b[1;3H\x1b[K", []string{"ab"}},
		{"EL 1", "abcdef", "\x1b[1;3H\x1b[1K", []string{"   def"}},
		{"EL 2", "abcdef", "\x1b[1;3H\x1b[2K", []string{""}},
		{"ECH", "abcdef", "\x1b[1;2H\x1b[3X", []string{"a   ef"}},
		{"ECH past edge", "abcdef", "\x1b[1;5H\x1b[99X", []string{"abcd"}},
		{"ICH", "abcdef", "\x1b[1;3H\x1b[2@", []string{"ab  cdef"}},
		{"ICH pushes off edge", "abcdefghij", "\x1b[1;1H\x1b[3@", []string{"   abcdefg"}},
		{"DCH", "abcdef", "\x1b[1;3H\x1b[2P", []string{"abef"}},
		{"IL", fiveLines, "\x1b[2;1H\x1b[L", []string{"A", "", "B", "C", "D"}},
		{"DL", fiveLines, "\x1b[2;1H\x1b[2M", []string{"A", "D", "E", "", ""}},
		{"IL outside region", fiveLines, "\x1b[2;3r\x1b[5;1H\x1b[L", []string{"A", "B", "C", "D", "E"}},
		{"SU", fiveLines, "\x1b[2S", []string{"C", "D", "E", "", ""}},
		{"SD", fiveLines, "\x1b[T", []string{"", "A", "B", "C", "D"}},
		{"LF in region", fiveLines, "\x1b[2;4r\x1b[4;1H\n", []string{"A", "C", "D", "", "E"}},
		{"RI in region", fiveLines, "\x1b[2;4r\x1b[2;1H\x1bM", []string{"A", "", "B", "C", "E"}},
		{"SU in region", fiveLines, "\x1b[2;4r\x1b[S", []string{"A", "C", "D", "", "E"}},
		{"invalid region ignored", fiveLines, "\x1b[4;2r\x1b[5;1H\n", []string{"B", "C", "D", "E", ""}},
		{"REP", "", "x\x1b[3b", []string{"xxxx"}},
		{"REP wide", "", "中\x1b[2b", []string{"中中中"}},
		{"IRM", "abc", "\x1b[1;1H\x1b[4hXY", []string{"XYabc"}},
		{"LNM", "", "\x1b[20ha\nb", []string{"a", "b"}},
		{"DECALN", "", "\x1b#8", []string{"EEEEEEEEEE", "EEEEEEEEEE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(10, 5)
			h.SendSeq(tt.setup)
			h.SendSeq(tt.seq)
			for y, want := range tt.lines {
				h.AssertLine(t, y, want)
			}
		})
	}
}

func TestEraseUsesBackground(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.SendSeq("abc\x1b[41m\x1b[2J")
	for y := 0; y < 3; y++ {
		for x := 0; x < 10; x++ {
			cell := h.GetCell(x, y)
			if !cell.IsBlank() || cell.BG != IndexedColor(1) || cell.Width != 1 {
				t.Fatalf("cell (%d,%d) = %+v, want blank on red", x, y, cell)
			}
		}
	}

	h.SendSeq("\x1b[44m\x1b[S")
	if got := h.GetCell(0, 2).BG; got != IndexedColor(4) {
		t.Errorf("scrolled-in row BG = %+v, want blue", got)
	}
}

func TestEraseSplitsWideGlyph(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("a中b\x1b[1;3H\x1b[K")
	h.AssertLine(t, 0, "a")
	if c := h.GetCell(1, 0); !c.IsBlank() || c.Width != 1 {
		t.Errorf("left half of erased wide glyph = %+v", c)
	}
}

func TestDCHSplitsWideGlyph(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("中ab\x1b[1;2H\x1b[P")
	if c := h.GetCell(0, 0); c.Width != 1 || !c.IsBlank() {
		t.Errorf("orphaned wide glyph not cleared: %+v", c)
	}
	h.AssertRune(t, 1, 0, 'a')
}
