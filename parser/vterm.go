// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm.go
// Summary: VTerm - screen, cursor and mode state driven by the Parser.
// Usage: Create with NewVTerm, feed bytes through a Parser bound to it.
// Notes: Not safe for concurrent use; callers serialize access.

package parser

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CursorShape is the DECSCUSR cursor style.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// savedCursor is the DECSC state.
type savedCursor struct {
	row, col      int
	pen           Pen
	charsets      [4]Charset
	activeCharset int
	originMode    bool
	autoWrap      bool
	valid         bool
}

// VTerm represents the state of a virtual terminal: a primary and an
// alternate screen, the cursor, the current pen and the session modes.
type VTerm struct {
	rows, cols  int
	primary     *Screen
	alt         *Screen
	screen      *Screen
	inAltScreen bool

	cursorRow, cursorCol int
	wrapNext             bool
	cursorVisible        bool
	cursorBlink          bool
	cursorShape          CursorShape

	pen                     Pen
	marginTop, marginBottom int
	tabStops                []bool

	utf8           bool
	appCursorKeys  bool
	appKeypad      bool
	autoWrapMode   bool
	originMode     bool
	insertMode     bool
	newlineMode    bool
	reverseScreen  bool
	bracketedPaste bool
	focusReporting bool
	mouse          mouseState

	charsets      [4]Charset
	activeCharset int
	singleShift   int // -1 when no single shift is pending

	savedMain, savedAlt savedCursor

	defaults   DefaultColors
	boldBright bool
	reflow     bool

	title, iconName string

	// lastPrint is the cell written by the previous printable character,
	// used for combining marks and REP.
	lastPrint      Pos
	lastPrintValid bool
	lastGraphic    rune

	damage DamageTracker

	WriteToPty        func([]byte)
	TitleChanged      func(string)
	IconNameChanged   func(string)
	OnAltScreenChange func(bool)
	OnBell            func()
	DefaultFgChanged  func(RGB)
	DefaultBgChanged  func(RGB)
	outbuf            []byte
}

// Option configures a VTerm at construction.
type Option func(*VTerm)

// WithPtyWriter routes replies (DSR, DA, queries) to writer instead of the
// internal output queue.
func WithPtyWriter(writer func([]byte)) Option { return func(v *VTerm) { v.WriteToPty = writer } }

func WithTitleChangeHandler(handler func(string)) Option {
	return func(v *VTerm) { v.TitleChanged = handler }
}

func WithIconNameChangeHandler(handler func(string)) Option {
	return func(v *VTerm) { v.IconNameChanged = handler }
}

func WithAltScreenChangeHandler(handler func(bool)) Option {
	return func(v *VTerm) { v.OnAltScreenChange = handler }
}

func WithBellHandler(handler func()) Option {
	return func(v *VTerm) { v.OnBell = handler }
}

func WithDefaultFgChangeHandler(handler func(RGB)) Option {
	return func(v *VTerm) { v.DefaultFgChanged = handler }
}

func WithDefaultBgChangeHandler(handler func(RGB)) Option {
	return func(v *VTerm) { v.DefaultBgChanged = handler }
}

// WithReflow enables rewrapping of soft-wrapped lines on the primary
// screen when the width changes.
func WithReflow(enabled bool) Option {
	return func(v *VTerm) { v.reflow = enabled }
}

// WithUTF8 selects UTF-8 (true) or 8-bit (false) input framing.
func WithUTF8(enabled bool) Option {
	return func(v *VTerm) { v.utf8 = enabled }
}

// WithDefaultColors sets the session default foreground and background.
func WithDefaultColors(fg, bg RGB) Option {
	return func(v *VTerm) { v.setDefaults(fg, bg) }
}

// WithBoldIsBright resolves bold text in colors 0-7 to the bright variants.
func WithBoldIsBright(enabled bool) Option {
	return func(v *VTerm) { v.boldBright = enabled }
}

// NewVTerm creates and initializes a new virtual terminal. Dimensions must
// be positive; term.New validates them for hosts.
func NewVTerm(rows, cols int, opts ...Option) *VTerm {
	v := &VTerm{
		rows:          rows,
		cols:          cols,
		primary:       NewScreen(rows, cols),
		alt:           NewScreen(rows, cols),
		cursorVisible: true,
		cursorBlink:   true,
		autoWrapMode:  true,
		utf8:          true,
		reflow:        true,
		singleShift:   -1,
		marginTop:     0,
		marginBottom:  rows - 1,
		pen:           Pen{FG: DefaultColor, BG: DefaultColor},
		defaults:      FallbackColors,
	}
	v.screen = v.primary
	for _, opt := range opts {
		opt(v)
	}
	v.resetTabStops()
	return v
}

func (v *VTerm) setDefaults(fg, bg RGB) {
	fg.Default, bg.Default = true, true
	v.defaults = DefaultColors{FG: fg, BG: bg}
}

// --- Simple Getters ---

func (v *VTerm) Rows() int                    { return v.rows }
func (v *VTerm) Cols() int                    { return v.cols }
func (v *VTerm) Cursor() (int, int)           { return v.cursorRow, v.cursorCol }
func (v *VTerm) CursorVisible() bool          { return v.cursorVisible }
func (v *VTerm) CursorShape() CursorShape     { return v.cursorShape }
func (v *VTerm) CursorBlink() bool            { return v.cursorBlink }
func (v *VTerm) UTF8() bool                   { return v.utf8 }
func (v *VTerm) AltScreen() bool              { return v.inAltScreen }
func (v *VTerm) AppCursorKeys() bool          { return v.appCursorKeys }
func (v *VTerm) Title() string                { return v.title }
func (v *VTerm) IconName() string             { return v.iconName }
func (v *VTerm) DefaultColors() DefaultColors { return v.defaults }
func (v *VTerm) BoldIsBright() bool           { return v.boldBright }
func (v *VTerm) Pen() Pen                     { return v.pen }
func (v *VTerm) ScrollMargins() (int, int)    { return v.marginTop, v.marginBottom }

// Screen returns the active screen buffer.
func (v *VTerm) Screen() *Screen { return v.screen }

// SetUTF8 switches input framing.
func (v *VTerm) SetUTF8(enabled bool) { v.utf8 = enabled }

// SetDefaultColors reconfigures the session default fg/bg. Cells holding
// Default references pick the new values up on their next read, so the
// whole grid is damaged.
func (v *VTerm) SetDefaultColors(fg, bg RGB) {
	v.setDefaults(fg, bg)
	v.damageAll()
}

// Cell returns the cell at (row, col) on the active screen.
func (v *VTerm) Cell(row, col int) (Cell, bool) { return v.screen.Cell(row, col) }

// Text returns the active screen as plain text.
func (v *VTerm) Text() string { return v.screen.Text() }

// Modes is a snapshot of the session modes.
type Modes struct {
	UTF8           bool
	AltScreen      bool
	AppCursorKeys  bool
	AppKeypad      bool
	AutoWrap       bool
	Origin         bool
	Insert         bool
	Newline        bool
	ReverseScreen  bool
	BracketedPaste bool
	FocusReporting bool
	CursorVisible  bool
	CursorBlink    bool
	CursorShape    CursorShape
	Mouse          MouseMode
	MouseEncoding  MouseEncoding
}

// Modes returns the current session modes.
func (v *VTerm) Modes() Modes {
	return Modes{
		UTF8:           v.utf8,
		AltScreen:      v.inAltScreen,
		AppCursorKeys:  v.appCursorKeys,
		AppKeypad:      v.appKeypad,
		AutoWrap:       v.autoWrapMode,
		Origin:         v.originMode,
		Insert:         v.insertMode,
		Newline:        v.newlineMode,
		ReverseScreen:  v.reverseScreen,
		BracketedPaste: v.bracketedPaste,
		FocusReporting: v.focusReporting,
		CursorVisible:  v.cursorVisible,
		CursorBlink:    v.cursorBlink,
		CursorShape:    v.cursorShape,
		Mouse:          v.mouse.mode,
		MouseEncoding:  v.mouse.encoding,
	}
}

// --- Output ---

// writeOutput sends reply bytes to the child, through WriteToPty when set
// and into the output queue otherwise.
func (v *VTerm) writeOutput(b []byte) {
	if len(b) == 0 {
		return
	}
	if v.WriteToPty != nil {
		v.WriteToPty(b)
		return
	}
	v.outbuf = append(v.outbuf, b...)
}

// ReadOutput drains queued reply bytes.
func (v *VTerm) ReadOutput() []byte {
	if len(v.outbuf) == 0 {
		return nil
	}
	out := v.outbuf
	v.outbuf = nil
	return out
}

// --- Damage ---

// EnableNotifications starts damage and cursor tracking.
func (v *VTerm) EnableNotifications() {
	v.damage.Enable(Pos{v.cursorRow, v.cursorCol}, v.cursorVisible)
}

// DisableNotifications stops tracking; polls return the sentinel again.
func (v *VTerm) DisableNotifications() { v.damage.Disable() }

// PollNotifications returns and clears the accumulated damage.
func (v *VTerm) PollNotifications() Notification { return v.damage.Poll() }

func (v *VTerm) damageRect(r Rect) { v.damage.Damage(r) }

func (v *VTerm) damageCells(row, startCol, endCol int) {
	v.damage.Damage(Rect{StartRow: row, StartCol: startCol, EndRow: row + 1, EndCol: endCol})
}

func (v *VTerm) damageRows(startRow, endRow int) {
	v.damage.Damage(Rect{StartRow: startRow, StartCol: 0, EndRow: endRow, EndCol: v.cols})
}

func (v *VTerm) damageAll() { v.damageRows(0, v.rows) }

// --- Character placement ---

// placeChar puts a code point at the cursor, handling combining marks,
// wide glyphs, insert mode and deferred wrapping.
func (v *VTerm) placeChar(r rune) {
	v.placeRaw(v.translateCharset(r))
}

// placeRaw prints a code point that has already been charset-mapped.
func (v *VTerm) placeRaw(r rune) {
	width := runewidth.RuneWidth(r)
	if v.combine(r, width) {
		return
	}
	if width == 0 {
		// A zero-width code point with nothing to attach to is dropped.
		return
	}
	if width > 2 {
		width = 2
	}
	if width == 2 && v.cols < 2 {
		width = 1
	}
	v.lastGraphic = r

	if v.wrapNext {
		if v.autoWrapMode {
			v.screen.setWrapped(v.cursorRow, true)
			v.wrapNext = false
			v.setCursorCol(0)
			v.LineFeed()
		} else {
			v.wrapNext = false
		}
	}

	if width == 2 && v.cursorCol == v.cols-1 {
		if v.autoWrapMode {
			v.putCell(v.cursorRow, v.cursorCol, blankCell(v.pen.BG))
			v.screen.setWrapped(v.cursorRow, true)
			v.setCursorCol(0)
			v.LineFeed()
		} else {
			v.setCursorCol(v.cols - 2)
		}
	}

	row, col := v.cursorRow, v.cursorCol
	if v.insertMode {
		v.screen.InsertCells(row, col, width, v.pen.BG)
		v.damageCells(row, max(col-1, 0), v.cols)
	}

	cell := Cell{Width: width, FG: v.pen.FG, BG: v.pen.BG, Attr: v.pen.Attr}
	cell.Chars[0] = r
	v.putCell(row, col, cell)
	if width == 2 {
		placeholder := Cell{Width: 0, FG: v.pen.FG, BG: v.pen.BG, Attr: v.pen.Attr}
		v.putCell(row, col+1, placeholder)
	}
	v.lastPrint = Pos{Row: row, Col: col}
	v.lastPrintValid = true

	if col+width >= v.cols {
		// Deferred wrap: the cursor stays on the last column.
		v.setCursorCol(v.cols - 1)
		v.wrapNext = true
	} else {
		v.setCursorCol(col + width)
	}
}

// combine attaches r to the previously printed cell when it extends that
// cell's grapheme cluster.
func (v *VTerm) combine(r rune, width int) bool {
	if !v.lastPrintValid {
		return false
	}
	prev, ok := v.screen.Cell(v.lastPrint.Row, v.lastPrint.Col)
	if !ok || prev.IsBlank() || prev.Width == 0 {
		return false
	}
	cluster := prev.String()
	last := []rune(cluster)
	if width != 0 && last[len(last)-1] != '\u200d' {
		return false
	}
	if uniseg.GraphemeClusterCount(cluster+string(r)) != 1 {
		return false
	}
	if !prev.appendRune(r) {
		// Cluster is full; swallow the extra mark rather than start a cell.
		return true
	}
	v.screen.SetCell(v.lastPrint.Row, v.lastPrint.Col, prev)
	v.damageCells(v.lastPrint.Row, v.lastPrint.Col, v.lastPrint.Col+max(prev.Width, 1))
	return true
}

// putCell writes a cell, repairing any wide glyph it partially overwrites,
// and records the damage.
func (v *VTerm) putCell(row, col int, c Cell) {
	s := v.screen
	old, ok := s.Cell(row, col)
	if !ok {
		return
	}
	startCol, endCol := col, col+1
	if old.Width == 0 && col > 0 && c.Width != 0 {
		if left, _ := s.Cell(row, col-1); left.Width == 2 {
			s.SetCell(row, col-1, blankCell(v.pen.BG))
			startCol = col - 1
		}
	}
	if old.Width == 2 && c.Width != 2 && col+1 < s.Cols() {
		s.SetCell(row, col+1, blankCell(v.pen.BG))
		endCol = col + 2
	}
	s.SetCell(row, col, c)
	v.damageCells(row, startCol, endCol)
}

func (v *VTerm) resetTabStops() {
	v.tabStops = make([]bool, v.cols)
	for i := 0; i < v.cols; i += 8 {
		v.tabStops[i] = true
	}
}
