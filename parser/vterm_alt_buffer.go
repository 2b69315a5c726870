// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_alt_buffer.go
// Summary: Switching between the primary and alternate screens.
// Usage: Part of VTerm terminal emulator.
// Notes: The primary screen is never touched while the alternate one is
//        active, so switching back restores it exactly.

package parser

// EnableAltScreen switches the active view. Entering saves the cursor and
// clears the alternate screen; leaving restores the primary cursor.
func (v *VTerm) EnableAltScreen(on bool) {
	if on == v.inAltScreen {
		return
	}
	if on {
		v.SaveCursor()
		v.switchScreen(true, true)
		return
	}
	v.switchScreen(false, false)
	v.RestoreCursor()
}

// switchScreen swaps the active buffer. clearAlt blanks the alternate
// screen when entering it.
func (v *VTerm) switchScreen(alt, clearAlt bool) {
	if alt == v.inAltScreen {
		return
	}
	v.logDebug("[ALT] switching alt=%v cursor=(%d,%d)", alt, v.cursorRow, v.cursorCol)
	v.inAltScreen = alt
	if alt {
		if clearAlt {
			v.alt.Clear(v.pen.BG)
		}
		v.screen = v.alt
	} else {
		v.screen = v.primary
	}
	v.wrapNext = false
	v.lastPrintValid = false
	v.damageAll()
	if v.OnAltScreenChange != nil {
		v.OnAltScreenChange(alt)
	}
}
