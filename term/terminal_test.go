// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal_test.go
// Summary: Tests for the host-facing Terminal handle.

package term

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/framegrace/texelvt/parser"
)

func mustNew(t *testing.T, rows, cols int, opts ...Option) *Terminal {
	t.Helper()
	term, err := New(rows, cols, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", rows, cols, err)
	}
	return term
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       error
	}{
		{0, 80, ErrInvalidSize},
		{24, 0, ErrInvalidSize},
		{-1, 10, ErrInvalidSize},
		{3000, 3000, ErrTooLarge},
	}
	for _, tt := range tests {
		term, err := New(tt.rows, tt.cols)
		if !errors.Is(err, tt.want) {
			t.Errorf("New(%d, %d) error = %v, want %v", tt.rows, tt.cols, err, tt.want)
		}
		if term != nil {
			t.Errorf("New(%d, %d) returned a terminal on error", tt.rows, tt.cols)
		}
	}
}

func TestColoredTextIsResolved(t *testing.T) {
	term := mustNew(t, 24, 80)
	term.Feed([]byte("\x1b[31mHi\x1b[0m"))

	c, ok := term.GetCell(0, 0)
	if !ok || c.Rune() != 'H' {
		t.Fatalf("cell (0,0) = %q, %v", c.String(), ok)
	}
	if c.FG != parser.PaletteColor(1) || c.FG.Default {
		t.Errorf("cell (0,0) fg = %+v, want palette red", c.FG)
	}
	if !c.BG.Default {
		t.Errorf("cell (0,0) bg should be the default, got %+v", c.BG)
	}

	c, ok = term.GetCell(0, 2)
	if !ok {
		t.Fatal("cell (0,2) absent")
	}
	fg, bg := term.DefaultColors()
	if c.Attr != 0 || c.FG != fg || c.BG != bg {
		t.Errorf("cell (0,2) = %+v, want default attributes", c)
	}
}

func TestGetCellBounds(t *testing.T) {
	term := mustNew(t, 5, 10)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 10}} {
		if _, ok := term.GetCell(p[0], p[1]); ok {
			t.Errorf("GetCell(%d, %d) should be absent", p[0], p[1])
		}
	}

	if err := term.Resize(8, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			if _, ok := term.GetCell(row, col); !ok {
				t.Fatalf("GetCell(%d, %d) absent after resize", row, col)
			}
		}
	}
	if _, ok := term.GetCell(0, 4); ok {
		t.Error("GetCell beyond new width should be absent")
	}
}

func TestResizeErrorsKeepState(t *testing.T) {
	term := mustNew(t, 10, 10, WithMaxCells(100))
	term.Feed([]byte("keep"))

	if err := term.Resize(11, 10); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Resize(11,10) error = %v, want ErrTooLarge", err)
	}
	if err := term.Resize(0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0,10) error = %v, want ErrInvalidSize", err)
	}
	if rows, cols := term.Size(); rows != 10 || cols != 10 {
		t.Errorf("size = %dx%d after failed resize", rows, cols)
	}
	if c, _ := term.GetCell(0, 0); c.Rune() != 'k' {
		t.Errorf("content lost after failed resize: %q", term.Text())
	}
}

func TestDefaultColorsFallback(t *testing.T) {
	fg, bg := DefaultColorsOf(nil)
	if fg != parser.FallbackColors.FG || bg != parser.FallbackColors.BG {
		t.Errorf("nil fallback = %+v / %+v", fg, bg)
	}

	custom := parser.RGB{R: 10, G: 20, B: 30}
	term := mustNew(t, 2, 2, WithDefaultColors(custom, parser.RGB{R: 1, G: 2, B: 3}))
	fg, _ = DefaultColorsOf(term)
	if fg.R != 10 || fg.G != 20 || fg.B != 30 {
		t.Errorf("custom fg = %+v", fg)
	}

	term.Close()
	fg, bg = term.DefaultColors()
	if fg != parser.FallbackColors.FG || bg != parser.FallbackColors.BG {
		t.Errorf("closed fallback = %+v / %+v", fg, bg)
	}
}

func TestClosedTerminal(t *testing.T) {
	term := mustNew(t, 2, 2)
	term.Close()
	term.Close()

	if n := term.Feed([]byte("x")); n != 0 {
		t.Errorf("Feed after Close = %d", n)
	}
	if _, err := term.Write([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after Close error = %v", err)
	}
	if err := term.Resize(3, 3); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize after Close error = %v", err)
	}
	if _, ok := term.GetCell(0, 0); ok {
		t.Error("GetCell after Close should be absent")
	}
	if n := term.PollNotifications(); n != parser.SentinelNotification {
		t.Errorf("poll after Close = %+v", n)
	}
}

func TestWriterInterface(t *testing.T) {
	term := mustNew(t, 3, 20)
	fmt.Fprintf(term, "\x1b[2;3H%s", "hello")
	if c, _ := term.GetCell(1, 2); c.Rune() != 'h' {
		t.Errorf("text = %q", term.Text())
	}
}

func TestRepliesQueueOrGoToOutput(t *testing.T) {
	term := mustNew(t, 5, 5)
	term.Feed([]byte("\x1b[2;3H\x1b[6n"))
	if got := string(term.ReadOutput()); got != "\x1b[2;3R" {
		t.Errorf("queued reply = %q", got)
	}

	var buf bytes.Buffer
	term = mustNew(t, 5, 5, WithOutput(&buf))
	term.Feed([]byte("\x1b[5n"))
	if buf.String() != "\x1b[0n" {
		t.Errorf("written reply = %q", buf.String())
	}
	if out := term.ReadOutput(); out != nil {
		t.Errorf("nothing should queue with an output writer, got %q", out)
	}
}

func TestNotifications(t *testing.T) {
	term := mustNew(t, 5, 10)
	if n := term.PollNotifications(); n != parser.SentinelNotification {
		t.Fatalf("poll before enable = %+v", n)
	}

	term.EnableNotifications()
	term.Feed([]byte("ab"))
	n := term.PollNotifications()
	if !n.DamagePending {
		t.Fatal("expected damage")
	}
	want := parser.Rect{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 2}
	if n.Damage != want {
		t.Errorf("damage = %+v, want %+v", n.Damage, want)
	}
	if !n.CursorMoved || n.CursorRow != 0 || n.CursorCol != 2 || n.OldRow != 0 || n.OldCol != 0 {
		t.Errorf("cursor = %+v", n)
	}

	n = term.PollNotifications()
	if n.DamagePending || n.CursorMoved {
		t.Errorf("second poll should be clean: %+v", n)
	}

	term.DisableNotifications()
	term.Feed([]byte("c"))
	if n := term.PollNotifications(); n != parser.SentinelNotification {
		t.Errorf("poll after disable = %+v", n)
	}
}

func TestReverseScreenFlipsAttribute(t *testing.T) {
	term := mustNew(t, 2, 5)
	term.Feed([]byte("a\x1b[7mb\x1b[?5h"))
	a, _ := term.GetCell(0, 0)
	b, _ := term.GetCell(0, 1)
	if a.Attr&parser.AttrReverse == 0 {
		t.Error("plain cell should read reversed under DECSCNM")
	}
	if b.Attr&parser.AttrReverse != 0 {
		t.Error("reversed cell should read normal under DECSCNM")
	}
}

func TestResetSoftAndHard(t *testing.T) {
	term := mustNew(t, 3, 10)
	term.Feed([]byte("\x1b[?1hhello"))

	term.Reset(false)
	if c, _ := term.GetCell(0, 0); c.Rune() != 0 {
		t.Errorf("soft reset left %q", term.Text())
	}
	if !term.Modes().AppCursorKeys {
		t.Error("soft reset should keep modes")
	}

	term.Reset(true)
	if term.Modes().AppCursorKeys {
		t.Error("hard reset should clear modes")
	}
	if row, col := term.Cursor(); row != 0 || col != 0 {
		t.Errorf("hard reset cursor = (%d,%d)", row, col)
	}
}

func TestHardResetDropsPartialSequences(t *testing.T) {
	term := mustNew(t, 3, 10)
	term.Feed([]byte("\xe4\xb8"))
	term.Reset(true)
	term.Feed([]byte("Hi"))
	if c, _ := term.GetCell(0, 0); c.Rune() != 'H' {
		t.Errorf("partial UTF-8 survived reset: %q", term.Text())
	}

	term.Feed([]byte("\x1b[3"))
	term.Reset(true)
	term.Feed([]byte("1mX"))
	if c, _ := term.GetCell(0, 0); c.Rune() != '1' || !c.FG.Default {
		t.Errorf("split CSI completed after reset: cell %q fg %+v", c.Rune(), c.FG)
	}
}

func TestAltScreenFromHost(t *testing.T) {
	var flips []bool
	term := mustNew(t, 3, 10, WithAltScreenChangeHandler(func(on bool) { flips = append(flips, on) }))
	term.Feed([]byte("main"))
	term.EnableAltScreen(true)
	term.Feed([]byte("alt"))
	term.EnableAltScreen(false)
	if c, _ := term.GetCell(0, 0); c.Rune() != 'm' {
		t.Errorf("primary not restored: %q", term.Text())
	}
	if len(flips) != 2 || !flips[0] || flips[1] {
		t.Errorf("alt screen callbacks = %v", flips)
	}
}

func TestSendEncodings(t *testing.T) {
	var title string
	term := mustNew(t, 24, 80, WithTitleChangeHandler(func(s string) { title = s }))

	if got := string(term.SendKey(parser.KeyUp, parser.ModNone)); got != "\x1b[A" {
		t.Errorf("up = %q", got)
	}
	term.Feed([]byte("\x1b[?1h\x1b]2;vim\x07"))
	if got := string(term.SendKey(parser.KeyUp, parser.ModNone)); got != "\x1bOA" {
		t.Errorf("up in DECCKM = %q", got)
	}
	if title != "vim" || term.Title() != "vim" {
		t.Errorf("title = %q / %q", title, term.Title())
	}
	if got := string(term.SendChar('c', parser.ModCtrl)); got != "\x03" {
		t.Errorf("ctrl-c = %q", got)
	}
	if got := term.SendMouseButton(1, true, parser.ModNone); got != nil {
		t.Errorf("mouse without tracking = %q", got)
	}
	term.SendMouseButton(1, false, parser.ModNone)
	term.Feed([]byte("\x1b[?1000h\x1b[?1006h"))
	term.SendMouseMove(2, 3, parser.ModNone)
	if got := string(term.SendMouseButton(1, true, parser.ModNone)); got != "\x1b[<0;4;3M" {
		t.Errorf("mouse press = %q", got)
	}
	if got := string(term.SendPaste("x")); got != "x" {
		t.Errorf("plain paste = %q", got)
	}
	term.Feed([]byte("\x1b[?2004h\x1b[?1004h"))
	if got := string(term.SendPaste("x")); got != "\x1b[200~x\x1b[201~" {
		t.Errorf("bracketed paste = %q", got)
	}
	if got := string(term.SendFocus(false)); got != "\x1b[O" {
		t.Errorf("focus out = %q", got)
	}
}
