// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_csi.go
// Summary: CSI dispatch - cursor movement, editing, modes and reports.
// Usage: Called by the Parser when a CSI sequence is complete.

package parser

import "fmt"

// ProcessCSI executes a complete CSI sequence. prefix is one of '<', '=',
// '>', '?' or 0; inter holds the intermediate bytes before the final.
func (v *VTerm) ProcessCSI(final byte, params []int, colon []bool, prefix byte, inter []byte) {
	param := func(i int, defaultVal int) int {
		if i < len(params) && params[i] != 0 {
			return params[i]
		}
		return defaultVal
	}

	if len(inter) > 0 {
		v.processCSIIntermediate(final, param, prefix, inter)
		return
	}

	switch prefix {
	case 0:
	case '?':
		switch final {
		case 'h':
			v.processPrivateMode(true, params)
		case 'l':
			v.processPrivateMode(false, params)
		case 'n':
			if param(0, 0) == 6 { // DECXCPR
				v.writeOutput([]byte(fmt.Sprintf("\x1b[?%d;%dR", v.reportRow(), v.cursorCol+1)))
			}
		default:
			v.logDebug("Parser: Unhandled CSI ?%v%c", params, final)
		}
		return
	case '>':
		if final == 'c' && param(0, 0) == 0 {
			// DA2: VT220, firmware 1.0.0, no keyboard options.
			v.writeOutput([]byte("\x1b[>1;100;0c"))
			return
		}
		v.logDebug("Parser: Unhandled CSI >%v%c", params, final)
		return
	default:
		v.logDebug("Parser: Unhandled CSI %c%v%c", prefix, params, final)
		return
	}

	switch final {
	case '@': // ICH
		v.InsertCharacters(param(0, 1))
	case 'A': // CUU
		v.MoveCursorUp(param(0, 1))
	case 'B': // CUD
		v.MoveCursorDown(param(0, 1))
	case 'C': // CUF
		v.MoveCursorForward(param(0, 1))
	case 'D': // CUB
		v.MoveCursorBackward(param(0, 1))
	case 'E': // CNL
		v.MoveCursorDown(param(0, 1))
		v.CarriageReturn()
	case 'F': // CPL
		v.MoveCursorUp(param(0, 1))
		v.CarriageReturn()
	case 'G', '`': // CHA, HPA
		v.SetCursorPos(v.cursorRow, param(0, 1)-1)
	case 'H', 'f': // CUP, HVP
		v.SetCursorPos(v.originRow(param(0, 1)-1), param(1, 1)-1)
	case 'I': // CHT
		v.TabForward(param(0, 1))
	case 'J': // ED
		v.ClearScreenMode(param(0, 0))
	case 'K': // EL
		v.ClearLine(param(0, 0))
	case 'L': // IL
		v.InsertLines(param(0, 1))
	case 'M': // DL
		v.DeleteLines(param(0, 1))
	case 'P': // DCH
		v.DeleteCharacters(param(0, 1))
	case 'S': // SU
		v.ScrollUp(param(0, 1))
	case 'T': // SD
		v.ScrollDown(param(0, 1))
	case 'X': // ECH
		v.EraseCharacters(param(0, 1))
	case 'Z': // CBT
		v.TabBackward(param(0, 1))
	case 'a': // HPR
		v.MoveCursorForward(param(0, 1))
	case 'b': // REP
		v.RepeatCharacter(param(0, 1))
	case 'c': // DA
		if param(0, 0) == 0 {
			// VT220 with ANSI color.
			v.writeOutput([]byte("\x1b[?62;22c"))
		}
	case 'd': // VPA
		v.SetCursorPos(v.originRow(param(0, 1)-1), v.cursorCol)
	case 'e': // VPR
		v.SetCursorPos(v.cursorRow+param(0, 1), v.cursorCol)
	case 'g': // TBC
		v.ClearTabStop(param(0, 0))
	case 'h': // SM
		v.processANSIMode(true, params)
	case 'l': // RM
		v.processANSIMode(false, params)
	case 'm': // SGR
		v.handleSGR(params, colon)
	case 'n': // DSR
		switch param(0, 0) {
		case 5:
			v.writeOutput([]byte("\x1b[0n"))
		case 6:
			v.writeOutput([]byte(fmt.Sprintf("\x1b[%d;%dR", v.reportRow(), v.cursorCol+1)))
		}
	case 'r': // DECSTBM
		v.SetMargins(param(0, 1), param(1, v.rows))
	case 's': // SCOSC
		v.SaveCursor()
	case 'u': // SCORC
		v.RestoreCursor()
	default:
		v.logDebug("Parser: Unhandled CSI %v%c", params, final)
	}
}

func (v *VTerm) processCSIIntermediate(final byte, param func(int, int) int, prefix byte, inter []byte) {
	if len(inter) != 1 {
		v.logDebug("Parser: Unhandled CSI %q%c", inter, final)
		return
	}
	switch {
	case inter[0] == '!' && final == 'p' && prefix == 0: // DECSTR
		v.SoftReset()
	case inter[0] == '$' && final == 'p': // DECRQM
		if mode := param(0, 0); mode > 0 {
			v.reportMode(mode, prefix == '?')
		}
	case inter[0] == ' ' && final == 'q' && prefix == 0: // DECSCUSR
		v.setCursorStyle(param(0, 0))
	default:
		v.logDebug("Parser: Unhandled CSI %c%q%c", prefix, inter, final)
	}
}

// reportRow is the 1-based cursor row for position reports, relative to
// the top margin under DECOM.
func (v *VTerm) reportRow() int {
	if v.originMode {
		return v.cursorRow - v.marginTop + 1
	}
	return v.cursorRow + 1
}
