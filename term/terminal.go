// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal.go
// Summary: Terminal - the host-facing handle over the emulation engine.
// Usage: Create with New, Feed child output, read cells and poll damage,
//        encode host input with the Send* methods.
// Notes: Not safe for concurrent use; hosts serialize access.

package term

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/framegrace/texelvt/parser"
)

// DefaultMaxCells bounds rows*cols unless WithMaxCells says otherwise.
const DefaultMaxCells = 1 << 22

var (
	// ErrInvalidSize is returned for zero or negative dimensions.
	ErrInvalidSize = errors.New("invalid terminal size")
	// ErrTooLarge is returned when rows*cols exceeds the cell limit.
	ErrTooLarge = errors.New("terminal size exceeds cell limit")
	// ErrClosed is returned by operations on a closed terminal.
	ErrClosed = errors.New("terminal closed")
)

// ResolvedCell is a grid cell with both colors resolved to RGB.
type ResolvedCell struct {
	Chars [parser.MaxCharsPerCell]rune
	Width int
	Attr  parser.Attribute
	FG    parser.RGB
	BG    parser.RGB
}

// Rune returns the base code point, or 0 for a blank cell.
func (c ResolvedCell) Rune() rune { return c.Chars[0] }

// String returns the grapheme cluster held by the cell.
func (c ResolvedCell) String() string {
	return parser.Cell{Chars: c.Chars}.String()
}

// Terminal is one emulator instance.
type Terminal struct {
	vterm    *parser.VTerm
	parser   *parser.Parser
	maxCells int
	closed   bool
}

type settings struct {
	maxCells int
	vtOpts   []parser.Option
}

// Option configures a Terminal at construction.
type Option func(*settings)

// WithMaxCells overrides DefaultMaxCells.
func WithMaxCells(n int) Option {
	return func(s *settings) { s.maxCells = n }
}

// WithOutput writes replies to queries (DSR, DA, OSC color queries) to w.
// Without it replies queue up for ReadOutput.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.vtOpts = append(s.vtOpts, parser.WithPtyWriter(func(b []byte) {
			if _, err := w.Write(b); err != nil {
				log.Printf("Terminal: reply write failed: %v", err)
			}
		}))
	}
}

// WithUTF8 selects UTF-8 (default) or 8-bit input framing.
func WithUTF8(enabled bool) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithUTF8(enabled)) }
}

// WithReflow controls whether the primary screen rewraps on width changes.
func WithReflow(enabled bool) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithReflow(enabled)) }
}

// WithDefaultColors sets the session default foreground and background.
func WithDefaultColors(fg, bg parser.RGB) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithDefaultColors(fg, bg)) }
}

// WithBoldIsBright maps bold text in the first eight colors to the bright set.
func WithBoldIsBright(enabled bool) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithBoldIsBright(enabled)) }
}

// WithTitleChangeHandler is called when the child sets the window title.
func WithTitleChangeHandler(h func(string)) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithTitleChangeHandler(h)) }
}

// WithBellHandler is called on BEL.
func WithBellHandler(h func()) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithBellHandler(h)) }
}

// WithAltScreenChangeHandler is called when the active screen flips.
func WithAltScreenChangeHandler(h func(bool)) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, parser.WithAltScreenChangeHandler(h)) }
}

// WithEngineOptions passes options straight to the engine.
func WithEngineOptions(opts ...parser.Option) Option {
	return func(s *settings) { s.vtOpts = append(s.vtOpts, opts...) }
}

func checkSize(rows, cols, maxCells int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidSize)
	}
	if rows > maxCells/cols {
		return fmt.Errorf("%dx%d (limit %d cells): %w", rows, cols, maxCells, ErrTooLarge)
	}
	return nil
}

// New creates a terminal of rows x cols blank cells.
func New(rows, cols int, opts ...Option) (*Terminal, error) {
	s := settings{maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(&s)
	}
	if s.maxCells <= 0 {
		s.maxCells = DefaultMaxCells
	}
	if err := checkSize(rows, cols, s.maxCells); err != nil {
		return nil, fmt.Errorf("new terminal: %w", err)
	}
	v := parser.NewVTerm(rows, cols, s.vtOpts...)
	return &Terminal{
		vterm:    v,
		parser:   parser.NewParser(v),
		maxCells: s.maxCells,
	}, nil
}

// Close releases the screens. Further calls behave as on a nil terminal.
func (t *Terminal) Close() {
	if t == nil {
		return
	}
	t.closed = true
	t.vterm = nil
	t.parser = nil
}

func (t *Terminal) alive() bool { return t != nil && !t.closed }

// Engine exposes the underlying VTerm for hosts that need raw cells.
func (t *Terminal) Engine() *parser.VTerm {
	if !t.alive() {
		return nil
	}
	return t.vterm
}

// Size returns the current dimensions.
func (t *Terminal) Size() (rows, cols int) {
	if !t.alive() {
		return 0, 0
	}
	return t.vterm.Rows(), t.vterm.Cols()
}

// Resize changes the dimensions. On error the terminal keeps its previous
// size and content.
func (t *Terminal) Resize(rows, cols int) error {
	if !t.alive() {
		return ErrClosed
	}
	if err := checkSize(rows, cols, t.maxCells); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	t.vterm.Resize(rows, cols)
	return nil
}

// SetUTF8 switches input framing between UTF-8 and 8-bit.
func (t *Terminal) SetUTF8(enabled bool) {
	if t.alive() {
		t.vterm.SetUTF8(enabled)
	}
}

// Feed parses child output and returns the number of bytes consumed,
// which is always len(data).
func (t *Terminal) Feed(data []byte) int {
	if !t.alive() {
		return 0
	}
	return t.parser.Feed(data)
}

// Write implements io.Writer over Feed.
func (t *Terminal) Write(p []byte) (int, error) {
	if !t.alive() {
		return 0, ErrClosed
	}
	return t.parser.Feed(p), nil
}

// EnableAltScreen switches between the primary and alternate screens.
func (t *Terminal) EnableAltScreen(on bool) {
	if t.alive() {
		t.vterm.EnableAltScreen(on)
	}
}

// Reset blanks the active screen. A hard reset also restores every mode,
// the cursor and the primary screen. It drops any partially received
// sequence as well.
func (t *Terminal) Reset(hard bool) {
	if !t.alive() {
		return
	}
	if hard {
		t.parser.Reset()
	}
	t.vterm.ResetScreen(hard)
}

// GetCell returns the cell at (row, col) with colors resolved against the
// session defaults. Reverse-screen mode (DECSCNM) toggles the reverse
// attribute of every cell.
func (t *Terminal) GetCell(row, col int) (ResolvedCell, bool) {
	if !t.alive() {
		return ResolvedCell{}, false
	}
	c, ok := t.vterm.Cell(row, col)
	if !ok {
		return ResolvedCell{}, false
	}
	fg, bg := parser.ResolveCell(c, t.vterm.DefaultColors(), t.vterm.BoldIsBright())
	rc := ResolvedCell{Chars: c.Chars, Width: c.Width, Attr: c.Attr, FG: fg, BG: bg}
	if t.vterm.Modes().ReverseScreen {
		rc.Attr ^= parser.AttrReverse
	}
	return rc, true
}

// Cursor returns the cursor position.
func (t *Terminal) Cursor() (row, col int) {
	if !t.alive() {
		return 0, 0
	}
	return t.vterm.Cursor()
}

// CursorVisible reports DECTCEM.
func (t *Terminal) CursorVisible() bool {
	return t.alive() && t.vterm.CursorVisible()
}

// DefaultColors returns the session default foreground and background.
func (t *Terminal) DefaultColors() (fg, bg parser.RGB) {
	return DefaultColorsOf(t)
}

// DefaultColorsOf returns t's default colors, or white on black when t is
// nil or closed.
func DefaultColorsOf(t *Terminal) (fg, bg parser.RGB) {
	if !t.alive() {
		return parser.FallbackColors.FG, parser.FallbackColors.BG
	}
	d := t.vterm.DefaultColors()
	return d.FG, d.BG
}

// SetDefaultColors reconfigures the session default colors.
func (t *Terminal) SetDefaultColors(fg, bg parser.RGB) {
	if t.alive() {
		t.vterm.SetDefaultColors(fg, bg)
	}
}

// Title returns the window title set by OSC 0/2.
func (t *Terminal) Title() string {
	if !t.alive() {
		return ""
	}
	return t.vterm.Title()
}

// Modes returns a snapshot of the session modes.
func (t *Terminal) Modes() parser.Modes {
	if !t.alive() {
		return parser.Modes{}
	}
	return t.vterm.Modes()
}

// Text dumps the active screen as plain text, one line per row.
func (t *Terminal) Text() string {
	if !t.alive() {
		return ""
	}
	return t.vterm.Text()
}

// ReadOutput drains replies queued when no WithOutput writer is set.
func (t *Terminal) ReadOutput() []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.ReadOutput()
}

// --- Input encoding ---

// SendChar encodes a typed character.
func (t *Terminal) SendChar(r rune, mod parser.Modifier) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.KeyboardChar(r, mod)
}

// SendKey encodes a special key under the current modes.
func (t *Terminal) SendKey(key parser.Key, mod parser.Modifier) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.KeyboardKey(key, mod)
}

// SendMouseMove records the pointer position and returns a motion report
// when the tracking mode asks for one.
func (t *Terminal) SendMouseMove(row, col int, mod parser.Modifier) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.MouseMove(row, col, mod)
}

// SendMouseButton reports a press or release at the last pointer position.
// Buttons 1-3 are left, middle and right; 4 and 5 are the wheel.
func (t *Terminal) SendMouseButton(button int, pressed bool, mod parser.Modifier) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.MouseButton(button, pressed, mod)
}

// SendPaste wraps text in bracketed-paste markers when the child asked.
func (t *Terminal) SendPaste(text string) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.Paste(text)
}

// SendFocus returns a focus report, or nil when focus reporting is off.
func (t *Terminal) SendFocus(in bool) []byte {
	if !t.alive() {
		return nil
	}
	return t.vterm.Focus(in)
}

// --- Notifications ---

// EnableNotifications starts damage and cursor tracking.
func (t *Terminal) EnableNotifications() {
	if t.alive() {
		t.vterm.EnableNotifications()
	}
}

// DisableNotifications stops tracking.
func (t *Terminal) DisableNotifications() {
	if t.alive() {
		t.vterm.DisableNotifications()
	}
}

// PollNotifications returns and clears accumulated damage. Before
// notifications are enabled it returns the sentinel (-1 fields).
func (t *Terminal) PollNotifications() parser.Notification {
	if !t.alive() {
		return parser.SentinelNotification
	}
	return t.vterm.PollNotifications()
}
