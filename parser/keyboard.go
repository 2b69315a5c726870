// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/keyboard.go
// Summary: Input encoder - keys and characters to the bytes the child expects.
// Usage: Hosts call VTerm.KeyboardKey / VTerm.KeyboardChar (or term.Terminal.Send*).

package parser

import (
	"fmt"
	"unicode/utf8"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl

	ModNone Modifier = 0
)

// Key identifies a non-character key.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPMult
	KeyKPPlus
	KeyKPComma
	KeyKPMinus
	KeyKPPeriod
	KeyKPDivide
	KeyKPEnter
	KeyKPEqual
)

type keyKind int

const (
	keyLiteral keyKind = iota
	keyEnter
	keyTab
	keyCursor // CSI/SS3 letter, SS3 under DECCKM
	keySS3    // SS3 letter
	keyCSINum // CSI n ~
	keyKeypad // literal, SS3 letter under DECKPAM
	keyKPEnter
)

type keyCode struct {
	kind    keyKind
	literal byte // literal byte, CSI/SS3 final, or keypad literal
	num     int  // CSI number, or SS3 letter for keypad keys
}

var keyCodes = map[Key]keyCode{
	KeyEnter:     {kind: keyEnter, literal: '\r'},
	KeyTab:       {kind: keyTab, literal: '\t'},
	KeyBackspace: {kind: keyLiteral, literal: 0x7f},
	KeyEscape:    {kind: keyLiteral, literal: 0x1b},
	KeyUp:        {kind: keyCursor, literal: 'A'},
	KeyDown:      {kind: keyCursor, literal: 'B'},
	KeyRight:     {kind: keyCursor, literal: 'C'},
	KeyLeft:      {kind: keyCursor, literal: 'D'},
	KeyHome:      {kind: keyCursor, literal: 'H'},
	KeyEnd:       {kind: keyCursor, literal: 'F'},
	KeyInsert:    {kind: keyCSINum, num: 2},
	KeyDelete:    {kind: keyCSINum, num: 3},
	KeyPageUp:    {kind: keyCSINum, num: 5},
	KeyPageDown:  {kind: keyCSINum, num: 6},
	KeyF1:        {kind: keySS3, literal: 'P'},
	KeyF2:        {kind: keySS3, literal: 'Q'},
	KeyF3:        {kind: keySS3, literal: 'R'},
	KeyF4:        {kind: keySS3, literal: 'S'},
	KeyF5:        {kind: keyCSINum, num: 15},
	KeyF6:        {kind: keyCSINum, num: 17},
	KeyF7:        {kind: keyCSINum, num: 18},
	KeyF8:        {kind: keyCSINum, num: 19},
	KeyF9:        {kind: keyCSINum, num: 20},
	KeyF10:       {kind: keyCSINum, num: 21},
	KeyF11:       {kind: keyCSINum, num: 23},
	KeyF12:       {kind: keyCSINum, num: 24},
	KeyKP0:       {kind: keyKeypad, literal: '0', num: 'p'},
	KeyKP1:       {kind: keyKeypad, literal: '1', num: 'q'},
	KeyKP2:       {kind: keyKeypad, literal: '2', num: 'r'},
	KeyKP3:       {kind: keyKeypad, literal: '3', num: 's'},
	KeyKP4:       {kind: keyKeypad, literal: '4', num: 't'},
	KeyKP5:       {kind: keyKeypad, literal: '5', num: 'u'},
	KeyKP6:       {kind: keyKeypad, literal: '6', num: 'v'},
	KeyKP7:       {kind: keyKeypad, literal: '7', num: 'w'},
	KeyKP8:       {kind: keyKeypad, literal: '8', num: 'x'},
	KeyKP9:       {kind: keyKeypad, literal: '9', num: 'y'},
	KeyKPMult:    {kind: keyKeypad, literal: '*', num: 'j'},
	KeyKPPlus:    {kind: keyKeypad, literal: '+', num: 'k'},
	KeyKPComma:   {kind: keyKeypad, literal: ',', num: 'l'},
	KeyKPMinus:   {kind: keyKeypad, literal: '-', num: 'm'},
	KeyKPPeriod:  {kind: keyKeypad, literal: '.', num: 'n'},
	KeyKPDivide:  {kind: keyKeypad, literal: '/', num: 'o'},
	KeyKPEnter:   {kind: keyKPEnter, literal: '\r', num: 'M'},
	KeyKPEqual:   {kind: keyKeypad, literal: '=', num: 'X'},
}

// KeyModes are the session modes that change key encoding.
type KeyModes struct {
	AppCursorKeys bool
	AppKeypad     bool
	Newline       bool
}

// EncodeKey returns the bytes for a special key, or nil for KeyNone and
// unknown keys.
func EncodeKey(key Key, mod Modifier, modes KeyModes) []byte {
	k, ok := keyCodes[key]
	if !ok {
		return nil
	}
	switch k.kind {
	case keyEnter:
		if modes.Newline {
			return []byte("\r\n")
		}
		return encodeLiteral(k.literal, mod)
	case keyTab:
		switch {
		case mod == ModShift:
			return []byte("\x1b[Z")
		case mod&ModShift != 0:
			return []byte(fmt.Sprintf("\x1b[1;%dZ", mod+1))
		}
		return encodeLiteral(k.literal, mod)
	case keyCursor:
		if mod == 0 {
			if modes.AppCursorKeys {
				return []byte{0x1b, 'O', k.literal}
			}
			return []byte{0x1b, '[', k.literal}
		}
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod+1, k.literal))
	case keySS3:
		return encodeSS3(k.literal, mod)
	case keyCSINum:
		if mod == 0 {
			return []byte(fmt.Sprintf("\x1b[%d~", k.num))
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d~", k.num, mod+1))
	case keyKeypad:
		if modes.AppKeypad {
			return encodeSS3(byte(k.num), mod)
		}
		return encodeLiteral(k.literal, mod)
	case keyKPEnter:
		if modes.AppKeypad {
			return encodeSS3(byte(k.num), mod)
		}
		return EncodeKey(KeyEnter, mod, modes)
	default:
		return encodeLiteral(k.literal, mod)
	}
}

func encodeSS3(final byte, mod Modifier) []byte {
	if mod == 0 {
		return []byte{0x1b, 'O', final}
	}
	return []byte(fmt.Sprintf("\x1b[1;%d%c", mod+1, final))
}

func encodeLiteral(b byte, mod Modifier) []byte {
	if mod&(ModShift|ModCtrl) != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%du", b, mod+1))
	}
	if mod&ModAlt != 0 {
		return []byte{0x1b, b}
	}
	return []byte{b}
}

// EncodeChar returns the bytes for a typed character. Ctrl folds letters
// and @[\]^_ to C0 controls; other modified characters use CSI u.
func EncodeChar(r rune, mod Modifier) []byte {
	// Shift is already reflected in the character itself.
	if r != ' ' {
		mod &^= ModShift
	}
	if mod == 0 {
		return utf8.AppendRune(nil, r)
	}

	var needsCSIu bool
	switch r {
	case 'i', 'j', 'm', '[':
		needsCSIu = true
	case '\\', ']', '^', '_':
		needsCSIu = false
	case ' ':
		needsCSIu = mod&ModShift != 0
	default:
		needsCSIu = r < 'a' || r > 'z'
	}

	if needsCSIu && mod&^ModAlt != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%du", r, mod+1))
	}
	if mod&ModCtrl != 0 {
		r &= 0x1f
	}
	var out []byte
	if mod&ModAlt != 0 {
		out = append(out, 0x1b)
	}
	return utf8.AppendRune(out, r)
}

func (v *VTerm) keyModes() KeyModes {
	return KeyModes{AppCursorKeys: v.appCursorKeys, AppKeypad: v.appKeypad, Newline: v.newlineMode}
}

// KeyboardKey encodes a special key for the current modes.
func (v *VTerm) KeyboardKey(key Key, mod Modifier) []byte {
	return EncodeKey(key, mod, v.keyModes())
}

// KeyboardChar encodes a typed character.
func (v *VTerm) KeyboardChar(r rune, mod Modifier) []byte {
	return EncodeChar(r, mod)
}

// Paste wraps text in bracketed-paste markers when the child enabled them.
func (v *VTerm) Paste(text string) []byte {
	if !v.bracketedPaste {
		return []byte(text)
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	return append(out, "\x1b[201~"...)
}

// Focus returns the focus in/out report when focus reporting is on.
func (v *VTerm) Focus(in bool) []byte {
	if !v.focusReporting {
		return nil
	}
	if in {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}
