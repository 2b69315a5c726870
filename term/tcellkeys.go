// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/tcellkeys.go
// Summary: Translation of tcell key and mouse events into encoder input.
// Usage: Hosts drawing with tcell call SendTcellKey / SendTcellMouse.

package term

import (
	"github.com/framegrace/texelvt/parser"
	"github.com/gdamore/tcell/v2"
)

var tcellKeys = map[tcell.Key]parser.Key{
	tcell.KeyEnter:     parser.KeyEnter,
	tcell.KeyTab:       parser.KeyTab,
	tcell.KeyBackspace: parser.KeyBackspace,
	tcell.KeyDEL:       parser.KeyBackspace,
	tcell.KeyEsc:       parser.KeyEscape,
	tcell.KeyUp:        parser.KeyUp,
	tcell.KeyDown:      parser.KeyDown,
	tcell.KeyLeft:      parser.KeyLeft,
	tcell.KeyRight:     parser.KeyRight,
	tcell.KeyInsert:    parser.KeyInsert,
	tcell.KeyDelete:    parser.KeyDelete,
	tcell.KeyHome:      parser.KeyHome,
	tcell.KeyEnd:       parser.KeyEnd,
	tcell.KeyPgUp:      parser.KeyPageUp,
	tcell.KeyPgDn:      parser.KeyPageDown,
	tcell.KeyF1:        parser.KeyF1,
	tcell.KeyF2:        parser.KeyF2,
	tcell.KeyF3:        parser.KeyF3,
	tcell.KeyF4:        parser.KeyF4,
	tcell.KeyF5:        parser.KeyF5,
	tcell.KeyF6:        parser.KeyF6,
	tcell.KeyF7:        parser.KeyF7,
	tcell.KeyF8:        parser.KeyF8,
	tcell.KeyF9:        parser.KeyF9,
	tcell.KeyF10:       parser.KeyF10,
	tcell.KeyF11:       parser.KeyF11,
	tcell.KeyF12:       parser.KeyF12,
}

// TcellModifiers converts a tcell modifier mask. Meta counts as Alt.
func TcellModifiers(m tcell.ModMask) parser.Modifier {
	var mod parser.Modifier
	if m&tcell.ModShift != 0 {
		mod |= parser.ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= parser.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= parser.ModCtrl
	}
	return mod
}

// TranslateKey maps a tcell key event to either a special key or a
// character. Ctrl+letter events arrive as control keys and are turned
// back into the letter with the Ctrl modifier. Backtab becomes Shift+Tab.
func TranslateKey(ev *tcell.EventKey) (key parser.Key, r rune, mod parser.Modifier) {
	mod = TcellModifiers(ev.Modifiers())
	k := ev.Key()
	if k == tcell.KeyBacktab {
		return parser.KeyTab, 0, mod | parser.ModShift
	}
	if pk, ok := tcellKeys[k]; ok {
		return pk, 0, mod
	}
	if k == tcell.KeyRune {
		return parser.KeyNone, ev.Rune(), mod
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return parser.KeyNone, rune('a' + (k - tcell.KeyCtrlA)), mod | parser.ModCtrl
	}
	switch k {
	case tcell.KeyCtrlSpace:
		return parser.KeyNone, ' ', mod | parser.ModCtrl
	case tcell.KeyCtrlBackslash:
		return parser.KeyNone, '\\', mod | parser.ModCtrl
	case tcell.KeyCtrlRightSq:
		return parser.KeyNone, ']', mod | parser.ModCtrl
	case tcell.KeyCtrlCarat:
		return parser.KeyNone, '^', mod | parser.ModCtrl
	case tcell.KeyCtrlUnderscore:
		return parser.KeyNone, '_', mod | parser.ModCtrl
	}
	return parser.KeyNone, 0, mod
}

// SendTcellKey encodes a tcell key event for the child.
func (t *Terminal) SendTcellKey(ev *tcell.EventKey) []byte {
	key, r, mod := TranslateKey(ev)
	if key != parser.KeyNone {
		return t.SendKey(key, mod)
	}
	if r == 0 {
		return nil
	}
	return t.SendChar(r, mod)
}

// MouseButtonChange is one press or release derived from two button masks.
type MouseButtonChange struct {
	Button  int
	Pressed bool
}

var tcellButtons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, 1},
	{tcell.Button3, 2},
	{tcell.Button2, 3},
}

// ButtonChanges lists the presses and releases between prev and cur.
// Wheel bits produce a press on every event that carries them.
func ButtonChanges(prev, cur tcell.ButtonMask) []MouseButtonChange {
	var out []MouseButtonChange
	for _, b := range tcellButtons {
		was, is := prev&b.mask != 0, cur&b.mask != 0
		if was != is {
			out = append(out, MouseButtonChange{Button: b.button, Pressed: is})
		}
	}
	if cur&tcell.WheelUp != 0 {
		out = append(out, MouseButtonChange{Button: 4, Pressed: true})
	}
	if cur&tcell.WheelDown != 0 {
		out = append(out, MouseButtonChange{Button: 5, Pressed: true})
	}
	return out
}

// SendTcellMouse encodes a tcell mouse event at (row, col) in terminal
// coordinates. prev is the button mask of the previous event.
func (t *Terminal) SendTcellMouse(ev *tcell.EventMouse, row, col int, prev tcell.ButtonMask) []byte {
	mod := TcellModifiers(ev.Modifiers())
	out := t.SendMouseMove(row, col, mod)
	for _, ch := range ButtonChanges(prev, ev.Buttons()&buttonBits) {
		out = append(out, t.SendMouseButton(ch.Button, ch.Pressed, mod)...)
	}
	return out
}

const buttonBits = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.WheelUp | tcell.WheelDown
