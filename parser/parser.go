// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser.go
// Summary: Byte-level escape-sequence state machine driving a VTerm.
// Usage: p := NewParser(v); p.Feed(chunk) for every chunk read from the child.
// Notes: Partial sequences and split UTF-8 are buffered across Feed calls.

package parser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateOSC
	StateDCS
	StateIgnoreString // SOS, PM, APC
)

const (
	// MaxParams is the number of CSI parameters kept; extra ones are dropped.
	MaxParams = 16
	// MaxStringLen caps OSC and DCS payloads. Longer strings are discarded.
	MaxStringLen = 4096

	maxParamValue = 65535
)

type Parser struct {
	state State
	vterm *VTerm

	utf8Buf [utf8.UTFMax]byte
	utf8Len int

	params        []int
	colon         []bool
	currentParam  int
	currentColon  bool
	prefix        byte
	intermediates []byte

	strBuf      []byte
	strOverflow bool
	strEscape   bool // ESC seen inside a string, waiting for '\'
}

func NewParser(v *VTerm) *Parser {
	return &Parser{
		state:         StateGround,
		vterm:         v,
		params:        make([]int, 0, MaxParams),
		colon:         make([]bool, 0, MaxParams),
		intermediates: make([]byte, 0, 4),
		strBuf:        make([]byte, 0, 128),
	}
}

// Reset returns the parser to Ground and drops any partial sequence,
// including an incomplete UTF-8 code point.
func (p *Parser) Reset() {
	p.state = StateGround
	p.utf8Len = 0
	p.params = p.params[:0]
	p.colon = p.colon[:0]
	p.currentParam = 0
	p.currentColon = false
	p.prefix = 0
	p.intermediates = p.intermediates[:0]
	p.strBuf = p.strBuf[:0]
	p.strOverflow = false
	p.strEscape = false
}

// State returns the current state, mostly for tests.
func (p *Parser) State() State { return p.state }

// Feed processes a chunk of child output. It always consumes the whole
// chunk and returns len(data).
func (p *Parser) Feed(data []byte) int {
	for _, b := range data {
		p.feedByte(b)
	}
	return len(data)
}

func (p *Parser) feedByte(b byte) {
	if p.inString() {
		p.stringByte(b)
		return
	}
	if b < 0x80 {
		p.flushUTF8()
		p.asciiByte(b)
		return
	}
	if !p.vterm.utf8 {
		p.highByte8(b)
		return
	}
	if p.state != StateGround {
		// Non-ASCII inside a control sequence cannot be part of it.
		logDebug("Parser: Discarding byte 0x%02x in state %d", b, p.state)
		return
	}
	p.utf8Byte(b)
}

func (p *Parser) inString() bool {
	return p.state == StateOSC || p.state == StateDCS || p.state == StateIgnoreString
}

// --- UTF-8 framing ---

func (p *Parser) utf8Byte(b byte) {
	if p.utf8Len == 0 {
		if b < 0xc2 || b > 0xf4 {
			// Stray continuation byte or a lead byte that is never valid.
			p.print(utf8.RuneError)
			return
		}
		p.utf8Buf[0] = b
		p.utf8Len = 1
		return
	}
	if b > 0xbf {
		// A new lead byte interrupts the pending sequence.
		p.flushUTF8()
		p.utf8Byte(b)
		return
	}
	p.utf8Buf[p.utf8Len] = b
	p.utf8Len++
	if !utf8.FullRune(p.utf8Buf[:p.utf8Len]) {
		return
	}
	r, size := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
	rest := append([]byte(nil), p.utf8Buf[size:p.utf8Len]...)
	p.utf8Len = 0
	p.print(r)
	for _, c := range rest {
		p.utf8Byte(c)
	}
}

// flushUTF8 emits U+FFFD for a truncated sequence.
func (p *Parser) flushUTF8() {
	if p.utf8Len == 0 {
		return
	}
	p.utf8Len = 0
	p.print(utf8.RuneError)
}

// --- 8-bit framing ---

func (p *Parser) highByte8(b byte) {
	if b < 0xa0 {
		p.c1Control(b)
		return
	}
	if p.state != StateGround {
		return
	}
	p.print(charmap.ISO8859_1.DecodeByte(b))
}

// c1Control handles an 8-bit C1 control as its ESC Fe equivalent.
func (p *Parser) c1Control(b byte) {
	p.state = StateEscape
	p.intermediates = p.intermediates[:0]
	p.escapeByte(b - 0x40)
}

// --- 7-bit dispatch ---

func (p *Parser) asciiByte(b byte) {
	switch {
	case b == 0x1b:
		p.state = StateEscape
		p.intermediates = p.intermediates[:0]
		return
	case b == 0x18 || b == 0x1a: // CAN, SUB
		p.state = StateGround
		return
	case b == 0x7f:
		return
	case b < 0x20:
		p.execute(b)
		return
	}

	switch p.state {
	case StateGround:
		p.print(rune(b))
	case StateEscape, StateEscapeIntermediate:
		p.escapeByte(b)
	case StateCSIEntry, StateCSIParam, StateCSIIntermediate, StateCSIIgnore:
		p.csiByte(b)
	}
}

func (p *Parser) print(r rune) {
	p.vterm.placeChar(r)
}

// execute runs a C0 control.
func (p *Parser) execute(b byte) {
	v := p.vterm
	if b != 0x07 {
		v.lastPrintValid = false
	}
	switch b {
	case 0x07: // BEL
		if v.OnBell != nil {
			v.OnBell()
		}
	case 0x08: // BS
		v.Backspace()
	case 0x09: // HT
		v.Tab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		v.LineFeed()
		if v.newlineMode {
			v.CarriageReturn()
		}
	case 0x0d: // CR
		v.CarriageReturn()
	case 0x0e: // SO
		v.shiftCharset(1)
	case 0x0f: // SI
		v.shiftCharset(0)
	default:
		logDebug("Parser: Ignoring C0 0x%02x", b)
	}
}

// --- ESC ---

func (p *Parser) escapeByte(b byte) {
	if b >= 0x20 && b <= 0x2f {
		if len(p.intermediates) < cap(p.intermediates) {
			p.intermediates = append(p.intermediates, b)
		}
		p.state = StateEscapeIntermediate
		return
	}
	if p.state == StateEscape {
		switch b {
		case '[':
			p.startCSI()
			return
		case ']':
			p.startString(StateOSC)
			return
		case 'P':
			p.startString(StateDCS)
			return
		case 'X', '^', '_':
			p.startString(StateIgnoreString)
			return
		}
	}
	p.state = StateGround
	p.vterm.lastPrintValid = false
	p.escDispatch(p.intermediates, b)
}

func (p *Parser) escDispatch(inter []byte, final byte) {
	v := p.vterm
	if len(inter) == 0 {
		switch final {
		case '7':
			v.SaveCursor()
		case '8':
			v.RestoreCursor()
		case '=':
			v.appKeypad = true
		case '>':
			v.appKeypad = false
		case 'D':
			v.Index()
		case 'E':
			v.NextLine()
		case 'H':
			v.SetTabStop()
		case 'M':
			v.ReverseIndex()
		case 'N':
			v.singleShift = 2
		case 'O':
			v.singleShift = 3
		case 'c':
			v.Reset()
		case '\\':
			// Stray ST.
		default:
			logDebug("Parser: Unhandled ESC %q", final)
		}
		return
	}
	if len(inter) != 1 {
		logDebug("Parser: Unhandled ESC %q %q", inter, final)
		return
	}
	switch inter[0] {
	case '#':
		if final == '8' {
			v.DECALN()
		}
	case '(':
		v.designateCharset(0, final)
	case ')':
		v.designateCharset(1, final)
	case '*':
		v.designateCharset(2, final)
	case '+':
		v.designateCharset(3, final)
	default:
		logDebug("Parser: Unhandled ESC %q %q", inter, final)
	}
}

// --- CSI ---

func (p *Parser) startCSI() {
	p.state = StateCSIEntry
	p.params = p.params[:0]
	p.colon = p.colon[:0]
	p.currentParam = 0
	p.currentColon = false
	p.prefix = 0
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) csiByte(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7e:
		if p.state == StateCSIIgnore {
			p.state = StateGround
			return
		}
		if p.state != StateCSIEntry {
			p.pushParam()
		}
		p.state = StateGround
		p.vterm.lastPrintValid = false
		p.vterm.ProcessCSI(b, p.params, p.colon, p.prefix, p.intermediates)
	case p.state == StateCSIIgnore:
	case b >= 0x20 && b <= 0x2f:
		if len(p.intermediates) < cap(p.intermediates) {
			p.intermediates = append(p.intermediates, b)
		}
		p.state = StateCSIIntermediate
	case p.state == StateCSIIntermediate:
		// Parameter bytes after an intermediate are malformed.
		p.state = StateCSIIgnore
	case b >= '<' && b <= '?':
		if p.state != StateCSIEntry {
			p.state = StateCSIIgnore
			return
		}
		p.prefix = b
		p.state = StateCSIParam
	case b >= '0' && b <= '9':
		p.currentParam = min(p.currentParam*10+int(b-'0'), maxParamValue)
		p.state = StateCSIParam
	case b == ';' || b == ':':
		p.pushParam()
		p.currentColon = b == ':'
		p.state = StateCSIParam
	}
}

// pushParam closes the current parameter. Omitted parameters are 0.
func (p *Parser) pushParam() {
	if len(p.params) < MaxParams {
		p.params = append(p.params, p.currentParam)
		p.colon = append(p.colon, p.currentColon)
	}
	p.currentParam = 0
	p.currentColon = false
}

// --- OSC / DCS / SOS / PM / APC ---

func (p *Parser) startString(s State) {
	p.state = s
	p.strBuf = p.strBuf[:0]
	p.strOverflow = false
	p.strEscape = false
}

func (p *Parser) stringByte(b byte) {
	if p.strEscape {
		p.strEscape = false
		if b == '\\' {
			p.finishString("\x1b\\")
			return
		}
		// Any other sequence terminates the string and starts anew.
		p.finishString("\x1b\\")
		p.state = StateEscape
		p.intermediates = p.intermediates[:0]
		p.feedByte(b)
		return
	}
	switch {
	case b == 0x1b:
		p.strEscape = true
	case b == 0x07:
		p.finishString("\x07")
	case b == 0x9c && !p.vterm.utf8:
		p.finishString("\x9c")
	case b == 0x18 || b == 0x1a:
		p.state = StateGround
	case b < 0x20:
		// Other C0 controls are ignored inside strings.
	default:
		if len(p.strBuf) >= MaxStringLen {
			p.strOverflow = true
			return
		}
		p.strBuf = append(p.strBuf, b)
	}
}

// finishString dispatches the collected string. term is the terminator
// that closed it, reused for query replies.
func (p *Parser) finishString(term string) {
	state := p.state
	p.state = StateGround
	p.vterm.lastPrintValid = false
	if p.strOverflow {
		logDebug("Parser: Discarding oversized string (%d bytes)", len(p.strBuf))
		return
	}
	switch state {
	case StateOSC:
		p.vterm.handleOSC(string(p.strBuf), term)
	case StateDCS:
		p.vterm.handleDCS(string(p.strBuf), term)
	}
}
