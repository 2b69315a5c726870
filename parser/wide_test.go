// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/wide_test.go
// Summary: Wide glyphs, combining sequences and charset translation.

package parser

import "testing"

func TestWideGlyphPlacement(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.SendSeq("\x1b[32m中")

	lead := h.GetCell(0, 0)
	if lead.Rune() != '中' || lead.Width != 2 {
		t.Fatalf("lead cell = %+v", lead)
	}
	tail := h.GetCell(1, 0)
	if tail.Width != 0 || !tail.IsPlaceholder() || tail.Rune() != 0 {
		t.Fatalf("placeholder cell = %+v", tail)
	}
	if tail.FG != lead.FG {
		t.Errorf("placeholder should carry the glyph style: %+v vs %+v", tail.FG, lead.FG)
	}
	h.AssertCursor(t, 2, 0)
}

func TestWideGlyphWrapsAtLastColumn(t *testing.T) {
	h := NewTestHarness(5, 3)
	h.SendSeq("abcd中")
	h.AssertLine(t, 0, "abcd")
	h.AssertBlank(t, 4, 0)
	h.AssertRune(t, 0, 1, '中')
	h.AssertCursor(t, 2, 1)
	if !h.vterm.Screen().Wrapped(0) {
		t.Error("row 0 should be soft-wrapped")
	}
}

func TestWideGlyphWithoutAutowrap(t *testing.T) {
	h := NewTestHarness(5, 3)
	h.SendSeq("\x1b[?7labcd中")
	h.AssertText(t, 0, 0, "abc")
	h.AssertRune(t, 3, 0, '中')
	if h.GetCell(4, 0).Width != 0 {
		t.Error("last column should hold the placeholder")
	}
	h.AssertLineBlank(t, 1)
}

func TestOverwritingHalfOfWideGlyph(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"overwrite lead", "中\x1b[1;1HX", "X"},
		{"overwrite placeholder", "中\x1b[1;2HX", " X"},
		{"wide over wide offset", "中文\x1b[1;2H日", " 日"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(10, 2)
			h.SendSeq(tt.seq)
			h.AssertLine(t, 0, tt.want)
			for x := 0; x < 10; x++ {
				c := h.GetCell(x, 0)
				if c.Width == 2 && h.GetCell(x+1, 0).Width != 0 {
					t.Errorf("wide glyph at %d lost its placeholder", x)
				}
				if c.Width == 0 && (x == 0 || h.GetCell(x-1, 0).Width != 2) {
					t.Errorf("orphan placeholder at %d", x)
				}
			}
		})
	}
}

func TestCombiningCharacters(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		cluster string
		cursor  int
	}{
		{"acute accent", []string{"e\u0301"}, "e\u0301", 1},
		{"two marks", []string{"a\u0323\u0308"}, "a\u0323\u0308", 1},
		{"mark split across feeds", []string{"o\xcc", "\x82"}, "o\u0302", 1},
		{"zwj sequence", []string{"\U0001F468\u200d\U0001F469"}, "\U0001F468\u200d\U0001F469", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(10, 2)
			for _, c := range tt.chunks {
				h.SendSeq(c)
			}
			if got := h.GetCell(0, 0).String(); got != tt.cluster {
				t.Errorf("cluster = %q, want %q", got, tt.cluster)
			}
			h.AssertCursor(t, tt.cursor, 0)
		})
	}
}

func TestCombiningLimit(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("a\u0301\u0302\u0303\u0304\u0305\u0306b")
	cell := h.GetCell(0, 0)
	if got := len([]rune(cell.String())); got != MaxCharsPerCell {
		t.Errorf("cluster holds %d code points, want %d", got, MaxCharsPerCell)
	}
	h.AssertRune(t, 1, 0, 'b')
}

func TestStrayCombiningMarkDropped(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("\u0301x")
	h.AssertRune(t, 0, 0, 'x')

	// A control between base and mark breaks the cluster.
	h.SendSeq("\r\ne\x1b[C\u0301")
	if got := h.GetCell(0, 1).String(); got != "e" {
		t.Errorf("mark joined across a cursor move: %q", got)
	}
}

func TestCharsets(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"DEC special G0", "\x1b(0lqkxjm\x1b(Bq", "┌─┐│┘└q"},
		{"SO/SI with G1", "\x1b)0\x0eq\x0fq", "─q"},
		{"UK", "\x1b(A#", "£"},
		{"single shift G2", "\x1b*0\x1bNqq", "─q"},
		{"unsupported final ignored", "\x1b(Zq", "q"},
		{"non-ASCII unaffected", "\x1b(0é", "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(20, 2)
			h.SendSeq(tt.seq)
			h.AssertLine(t, 0, tt.want)
		})
	}
}

func TestCharsetSavedWithCursor(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("\x1b(0\x1b7\x1b(B\x1b8q")
	h.AssertLine(t, 0, "─")
}
