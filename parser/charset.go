// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/charset.go
// Summary: G0-G3 character set designation and translation.
// Usage: Part of VTerm terminal emulator.

package parser

// Charset is a 94-character graphic set that can be designated into G0-G3.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetDECSpecial
	CharsetUK
)

// decSpecial maps 0x5f-0x7e to the DEC special graphics (line drawing) set.
var decSpecial = [32]rune{
	' ', // _ blank
	'◆', '▒', '␉', '␌', '␍', '␊', '°', '±',
	'␤', '␋', '┘', '┐', '┌', '└', '┼', '⎺',
	'⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬',
	'│', '≤', '≥', 'π', '≠', '£', '·',
}

func charsetFromFinal(final byte) (Charset, bool) {
	switch final {
	case 'B':
		return CharsetASCII, true
	case '0':
		return CharsetDECSpecial, true
	case 'A':
		return CharsetUK, true
	}
	return CharsetASCII, false
}

// designateCharset handles ESC ( ) * + <final>.
func (v *VTerm) designateCharset(slot int, final byte) {
	cs, ok := charsetFromFinal(final)
	if !ok {
		v.logDebug("Parser: Unsupported charset %q for G%d", final, slot)
		return
	}
	v.charsets[slot] = cs
}

// shiftCharset selects G0 (SI) or G1 (SO) as the active set.
func (v *VTerm) shiftCharset(slot int) { v.activeCharset = slot }

// translateCharset maps r through the active (or single-shifted) set.
func (v *VTerm) translateCharset(r rune) rune {
	slot := v.activeCharset
	if v.singleShift >= 0 {
		slot = v.singleShift
		v.singleShift = -1
	}
	if r < 0x20 || r > 0x7e {
		return r
	}
	switch v.charsets[slot] {
	case CharsetDECSpecial:
		if r >= 0x5f {
			return decSpecial[r-0x5f]
		}
	case CharsetUK:
		if r == '#' {
			return '£'
		}
	}
	return r
}
