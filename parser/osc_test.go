// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/osc_test.go
// Summary: OSC title and default color tests.

package parser

import "testing"

func TestOSCTitle(t *testing.T) {
	var titles, icons []string
	h := NewTestHarness(10, 3,
		WithTitleChangeHandler(func(s string) { titles = append(titles, s) }),
		WithIconNameChangeHandler(func(s string) { icons = append(icons, s) }),
	)

	h.SendSeq("\x1b]2;window\x07")
	if h.vterm.Title() != "window" {
		t.Errorf("OSC 2 title = %q", h.vterm.Title())
	}
	h.SendSeq("\x1b]1;icon\x1b\\")
	if h.vterm.IconName() != "icon" {
		t.Errorf("OSC 1 icon = %q", h.vterm.IconName())
	}
	h.SendSeq("\x1b]0;both ünï\x07")
	if h.vterm.Title() != "both ünï" || h.vterm.IconName() != "both ünï" {
		t.Errorf("OSC 0 = %q / %q", h.vterm.Title(), h.vterm.IconName())
	}
	h.SendSeq("\x1b]2;both ünï\x07")

	if len(titles) != 2 || titles[0] != "window" || titles[1] != "both ünï" {
		t.Errorf("title callbacks = %q", titles)
	}
	if len(icons) != 2 {
		t.Errorf("icon callbacks = %q", icons)
	}
}

func TestOSCTitleTerminatedByNewSequence(t *testing.T) {
	h := NewTestHarness(10, 3)
	h.SendSeq("\x1b]2;abc\x1b[2CX")
	if h.vterm.Title() != "abc" {
		t.Errorf("title = %q", h.vterm.Title())
	}
	h.AssertRune(t, 2, 0, 'X')
}

func TestOSCDefaultColors(t *testing.T) {
	var fgSeen, bgSeen RGB
	h := NewTestHarness(10, 3,
		WithDefaultFgChangeHandler(func(c RGB) { fgSeen = c }),
		WithDefaultBgChangeHandler(func(c RGB) { bgSeen = c }),
	)

	h.SendSeq("\x1b]10;?\x07")
	if got := h.Output(); got != "\x1b]10;rgb:ffff/ffff/ffff\x07" {
		t.Errorf("fg query = %q", got)
	}
	h.SendSeq("\x1b]11;?\x1b\\")
	if got := h.Output(); got != "\x1b]11;rgb:0000/0000/0000\x1b\\" {
		t.Errorf("bg query = %q", got)
	}

	h.SendSeq("\x1b]10;rgb:12/34/56\x07")
	want := RGB{R: 0x12, G: 0x34, B: 0x56, Default: true}
	if got := h.vterm.DefaultColors().FG; got != want || fgSeen != want {
		t.Errorf("fg = %+v (callback %+v), want %+v", got, fgSeen, want)
	}
	h.SendSeq("\x1b]11;#ff8000\x07")
	want = RGB{R: 0xff, G: 0x80, B: 0x00, Default: true}
	if got := h.vterm.DefaultColors().BG; got != want || bgSeen != want {
		t.Errorf("bg = %+v (callback %+v), want %+v", got, bgSeen, want)
	}

	h.SendSeq("\x1b]11;?\x07")
	if got := h.Output(); got != "\x1b]11;rgb:ffff/8080/0000\x07" {
		t.Errorf("bg query after set = %q", got)
	}

	h.SendSeq("\x1b]11;nonsense\x07")
	if got := h.vterm.DefaultColors().BG; got != want {
		t.Errorf("bad color should be ignored, bg = %+v", got)
	}
}

func TestParseOSCColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"rgb:ff/00/80", RGB{R: 255, B: 128}, true},
		{"rgb:ffff/0/8000", RGB{R: 255, B: 128}, true},
		{"rgb:f/f/f", RGB{R: 255, G: 255, B: 255}, true},
		{"#fff", RGB{R: 255, G: 255, B: 255}, true},
		{"#102030", RGB{R: 0x10, G: 0x20, B: 0x30}, true},
		{"rgb:ff/00", RGB{}, false},
		{"rgb:fffff/0/0", RGB{}, false},
		{"rgb:zz/0/0", RGB{}, false},
		{"red", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseOSCColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseOSCColor(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
