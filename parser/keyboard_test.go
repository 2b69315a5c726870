// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/keyboard_test.go
// Summary: Key, character, paste and focus encoding tests.

package parser

import "testing"

func TestEncodeKey(t *testing.T) {
	appCursor := KeyModes{AppCursorKeys: true}
	appKeypad := KeyModes{AppKeypad: true}
	tests := []struct {
		name  string
		key   Key
		mod   Modifier
		modes KeyModes
		want  string
	}{
		{"up", KeyUp, 0, KeyModes{}, "\x1b[A"},
		{"up DECCKM", KeyUp, 0, appCursor, "\x1bOA"},
		{"up ctrl", KeyUp, ModCtrl, KeyModes{}, "\x1b[1;5A"},
		{"up ctrl DECCKM", KeyUp, ModCtrl, appCursor, "\x1b[1;5A"},
		{"left shift+alt", KeyLeft, ModShift | ModAlt, KeyModes{}, "\x1b[1;4D"},
		{"home", KeyHome, 0, KeyModes{}, "\x1b[H"},
		{"end DECCKM", KeyEnd, 0, appCursor, "\x1bOF"},
		{"insert", KeyInsert, 0, KeyModes{}, "\x1b[2~"},
		{"delete", KeyDelete, 0, KeyModes{}, "\x1b[3~"},
		{"page up shift", KeyPageUp, ModShift, KeyModes{}, "\x1b[5;2~"},
		{"page down", KeyPageDown, 0, KeyModes{}, "\x1b[6~"},
		{"F1", KeyF1, 0, KeyModes{}, "\x1bOP"},
		{"F4 ctrl", KeyF4, ModCtrl, KeyModes{}, "\x1b[1;5S"},
		{"F5", KeyF5, 0, KeyModes{}, "\x1b[15~"},
		{"F6", KeyF6, 0, KeyModes{}, "\x1b[17~"},
		{"F10", KeyF10, 0, KeyModes{}, "\x1b[21~"},
		{"F11", KeyF11, 0, KeyModes{}, "\x1b[23~"},
		{"F12 alt", KeyF12, ModAlt, KeyModes{}, "\x1b[24;3~"},
		{"enter", KeyEnter, 0, KeyModes{}, "\r"},
		{"enter LNM", KeyEnter, 0, KeyModes{Newline: true}, "\r\n"},
		{"enter alt", KeyEnter, ModAlt, KeyModes{}, "\x1b\r"},
		{"enter shift", KeyEnter, ModShift, KeyModes{}, "\x1b[13;2u"},
		{"tab", KeyTab, 0, KeyModes{}, "\t"},
		{"tab shift", KeyTab, ModShift, KeyModes{}, "\x1b[Z"},
		{"tab shift+ctrl", KeyTab, ModShift | ModCtrl, KeyModes{}, "\x1b[1;6Z"},
		{"tab ctrl", KeyTab, ModCtrl, KeyModes{}, "\x1b[9;5u"},
		{"backspace", KeyBackspace, 0, KeyModes{}, "\x7f"},
		{"backspace alt", KeyBackspace, ModAlt, KeyModes{}, "\x1b\x7f"},
		{"backspace ctrl", KeyBackspace, ModCtrl, KeyModes{}, "\x1b[127;5u"},
		{"escape", KeyEscape, 0, KeyModes{}, "\x1b"},
		{"keypad 5", KeyKP5, 0, KeyModes{}, "5"},
		{"keypad 5 DECKPAM", KeyKP5, 0, appKeypad, "\x1bOu"},
		{"keypad plus DECKPAM", KeyKPPlus, 0, appKeypad, "\x1bOk"},
		{"keypad equal DECKPAM", KeyKPEqual, 0, appKeypad, "\x1bOX"},
		{"keypad enter", KeyKPEnter, 0, KeyModes{}, "\r"},
		{"keypad enter LNM", KeyKPEnter, 0, KeyModes{Newline: true}, "\r\n"},
		{"keypad enter DECKPAM", KeyKPEnter, 0, appKeypad, "\x1bOM"},
		{"none", KeyNone, 0, KeyModes{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodeKey(tt.key, tt.mod, tt.modes)); got != tt.want {
				t.Errorf("EncodeKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeChar(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		mod  Modifier
		want string
	}{
		{"plain", 'a', 0, "a"},
		{"unicode", 'é', 0, "é"},
		{"shift is in the rune", 'A', ModShift, "A"},
		{"ctrl letter", 'a', ModCtrl, "\x01"},
		{"ctrl z", 'z', ModCtrl, "\x1a"},
		{"alt letter", 'x', ModAlt, "\x1bx"},
		{"ctrl+alt letter", 'c', ModCtrl | ModAlt, "\x1b\x03"},
		{"ctrl i is not tab", 'i', ModCtrl, "\x1b[105;5u"},
		{"ctrl m is not enter", 'm', ModCtrl, "\x1b[109;5u"},
		{"ctrl [ is not escape", '[', ModCtrl, "\x1b[91;5u"},
		{"ctrl @ is not NUL", '@', ModCtrl, "\x1b[64;5u"},
		{"ctrl backslash", '\\', ModCtrl, "\x1c"},
		{"ctrl ^", '^', ModCtrl, "\x1e"},
		{"ctrl ]", ']', ModCtrl, "\x1d"},
		{"ctrl _", '_', ModCtrl, "\x1f"},
		{"ctrl digit", '1', ModCtrl, "\x1b[49;5u"},
		{"alt digit", '1', ModAlt, "\x1b1"},
		{"ctrl space", ' ', ModCtrl, "\x00"},
		{"shift space", ' ', ModShift, "\x1b[32;2u"},
		{"ctrl uppercase", 'A', ModCtrl | ModShift, "\x1b[65;5u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodeChar(tt.r, tt.mod)); got != tt.want {
				t.Errorf("EncodeChar(%q, %d) = %q, want %q", tt.r, tt.mod, got, tt.want)
			}
		})
	}
}

func TestKeyboardFollowsModes(t *testing.T) {
	h := NewTestHarness(10, 3)
	if got := string(h.vterm.KeyboardKey(KeyDown, 0)); got != "\x1b[B" {
		t.Errorf("normal mode down = %q", got)
	}
	h.SendSeq("\x1b[?1h\x1b=\x1b[20h")
	if got := string(h.vterm.KeyboardKey(KeyDown, 0)); got != "\x1bOB" {
		t.Errorf("DECCKM down = %q", got)
	}
	if got := string(h.vterm.KeyboardKey(KeyKP0, 0)); got != "\x1bOp" {
		t.Errorf("DECKPAM 0 = %q", got)
	}
	if got := string(h.vterm.KeyboardKey(KeyEnter, 0)); got != "\r\n" {
		t.Errorf("LNM enter = %q", got)
	}
	if got := string(h.vterm.KeyboardChar('q', ModCtrl)); got != "\x11" {
		t.Errorf("ctrl q = %q", got)
	}
}

func TestPasteAndFocus(t *testing.T) {
	h := NewTestHarness(10, 3)
	if got := string(h.vterm.Paste("hi")); got != "hi" {
		t.Errorf("plain paste = %q", got)
	}
	if got := h.vterm.Focus(true); got != nil {
		t.Errorf("focus without mode 1004 = %q", got)
	}

	h.SendSeq("\x1b[?2004h\x1b[?1004h")
	if got := string(h.vterm.Paste("hi")); got != "\x1b[200~hi\x1b[201~" {
		t.Errorf("bracketed paste = %q", got)
	}
	if got := string(h.vterm.Focus(true)); got != "\x1b[I" {
		t.Errorf("focus in = %q", got)
	}
	if got := string(h.vterm.Focus(false)); got != "\x1b[O" {
		t.Errorf("focus out = %q", got)
	}
}
