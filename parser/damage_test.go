// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/damage_test.go
// Summary: Damage region and cursor-movement notification tests.

package parser

import "testing"

func TestPollBeforeEnableReturnsSentinel(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.SendSeq("hello")
	n := h.vterm.PollNotifications()
	if n != SentinelNotification {
		t.Fatalf("poll before enable = %+v", n)
	}
	if n.CursorRow != -1 || n.CursorCol != -1 || n.CursorVisible != -1 || n.DamagePending {
		t.Errorf("sentinel fields wrong: %+v", n)
	}
}

func TestDamageAccumulatesAndClears(t *testing.T) {
	h := NewTestHarness(80, 24)
	h.vterm.EnableNotifications()

	first := h.vterm.PollNotifications()
	if first.DamagePending || first.CursorMoved {
		t.Errorf("enable should start from an empty state: %+v", first)
	}
	if first.CursorRow != 0 || first.CursorCol != 0 || first.CursorVisible != 1 {
		t.Errorf("cursor fields should be live after enable: %+v", first)
	}

	h.SendSeq("Hi")
	n := h.vterm.PollNotifications()
	want := Notification{
		CursorRow: 0, CursorCol: 2, CursorVisible: 1,
		CursorMoved: true, OldRow: 0, OldCol: 0,
		DamagePending: true,
		Damage:        Rect{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 2},
	}
	if n != want {
		t.Errorf("poll = %+v\nwant  %+v", n, want)
	}

	again := h.vterm.PollNotifications()
	if again.DamagePending || again.CursorMoved || !again.Damage.Empty() {
		t.Errorf("second poll should be clean: %+v", again)
	}
	if again.CursorRow != 0 || again.CursorCol != 2 {
		t.Errorf("cursor should still report the latest position: %+v", again)
	}
}

func TestDamageUnion(t *testing.T) {
	h := NewTestHarness(20, 10)
	h.vterm.EnableNotifications()
	h.SendSeq("\x1b[3;5HA\x1b[7;2HB")
	n := h.vterm.PollNotifications()
	want := Rect{StartRow: 2, StartCol: 1, EndRow: 7, EndCol: 5}
	if n.Damage != want {
		t.Errorf("damage = %+v, want %+v", n.Damage, want)
	}
	if n.OldRow != 0 || n.OldCol != 0 {
		t.Errorf("old cursor should be the position at the previous poll: %d,%d", n.OldRow, n.OldCol)
	}
}

func TestDamageFromOperations(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		seq   string
		want  Rect
	}{
		{"scroll damages region", "\x1b[2;4r", "\x1b[S", Rect{StartRow: 1, StartCol: 0, EndRow: 4, EndCol: 10}},
		{"clear screen", "", "\x1b[2J", Rect{StartRow: 0, StartCol: 0, EndRow: 5, EndCol: 10}},
		{"erase line right", "\x1b[2;4H", "\x1b[K", Rect{StartRow: 1, StartCol: 2, EndRow: 2, EndCol: 10}},
		{"wide glyph", "", "中", Rect{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 2}},
		{"insert chars", "\x1b[3;5H", "\x1b[@", Rect{StartRow: 2, StartCol: 3, EndRow: 3, EndCol: 10}},
		{"reverse screen", "", "\x1b[?5h", Rect{StartRow: 0, StartCol: 0, EndRow: 5, EndCol: 10}},
		{"OSC default color", "", "\x1b]11;#102030\x07", Rect{StartRow: 0, StartCol: 0, EndRow: 5, EndCol: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(10, 5)
			h.SendSeq(tt.setup)
			h.vterm.EnableNotifications()
			h.SendSeq(tt.seq)
			n := h.vterm.PollNotifications()
			if !n.DamagePending || n.Damage != tt.want {
				t.Errorf("damage = %+v (pending %v), want %+v", n.Damage, n.DamagePending, tt.want)
			}
		})
	}
}

func TestCursorVisibilityNotification(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.vterm.EnableNotifications()
	h.SendSeq("\x1b[?25l")
	n := h.vterm.PollNotifications()
	if n.CursorVisible != 0 || !n.CursorMoved {
		t.Errorf("hidden cursor not reported: %+v", n)
	}
	if n.DamagePending {
		t.Error("visibility change alone should not damage cells")
	}
}

func TestDisableStopsTracking(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.vterm.EnableNotifications()
	h.SendSeq("abc")
	h.vterm.DisableNotifications()
	if n := h.vterm.PollNotifications(); n != SentinelNotification {
		t.Errorf("disabled poll = %+v", n)
	}
	h.SendSeq("def")
	h.vterm.EnableNotifications()
	if n := h.vterm.PollNotifications(); n.DamagePending {
		t.Errorf("damage recorded while disabled: %+v", n)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 3}
	b := Rect{StartRow: 4, StartCol: 0, EndRow: 5, EndCol: 2}
	got := a.Union(b)
	want := Rect{StartRow: 1, StartCol: 0, EndRow: 5, EndCol: 3}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if (Rect{}).Union(a) != a {
		t.Error("union with empty rect should return the other")
	}
	if !got.Contains(Pos{Row: 3, Col: 2}) || got.Contains(Pos{Row: 5, Col: 0}) {
		t.Error("Contains should treat end coordinates as exclusive")
	}
}

func TestInsertModeOverPlaceholderDamagesGlyph(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.SendSeq("ab世")
	h.vterm.EnableNotifications()
	h.vterm.PollNotifications()

	// Cursor on the placeholder of 世: inserting splits the glyph at column 2.
	h.SendSeq("\x1b[1;4H\x1b[4hx")
	if c, _ := h.vterm.Cell(0, 2); c.Rune() != 0 {
		t.Fatalf("cell (0,2) = %q, want blank", c.Rune())
	}
	n := h.vterm.PollNotifications()
	if !n.Damage.Contains(Pos{Row: 0, Col: 2}) {
		t.Errorf("damage %+v should cover the split glyph at (0,2)", n.Damage)
	}
}
