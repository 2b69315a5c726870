// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Interactive tcell host: a child program drawn through a Terminal.
// Usage: cmd/texelvt-view calls Run with a pty-backed child.

package devshell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/term"
	"github.com/gdamore/tcell/v2"
)

// Child is the program being hosted.
type Child interface {
	io.ReadWriter
	Resize(rows, cols int) error
	Close() error
}

// ChildFactory starts the child at the given size.
type ChildFactory func(rows, cols int) (Child, error)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// QuitKey ends the session without waiting for the child.
const QuitKey = tcell.KeyCtrlQ

var errChildExited = errors.New("child exited")

type host struct {
	mu       sync.Mutex
	screen   tcell.Screen
	term     *term.Terminal
	child    Child
	buttons  tcell.ButtonMask
	inPaste  bool
	pasteBuf []rune
}

// Run hosts a child started by start until it exits or QuitKey is pressed.
// opts are applied to the terminal after the size is set from the screen.
func Run(start ChildFactory, opts ...term.Option) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()
	screen.EnableFocus()

	cols, rows := screen.Size()
	child, err := start(rows, cols)
	if err != nil {
		return fmt.Errorf("start child: %w", err)
	}
	defer child.Close()

	h := &host{screen: screen, child: child}
	opts = append(opts,
		term.WithOutput(child),
		term.WithBellHandler(func() { screen.Beep() }),
	)
	h.term, err = term.New(rows, cols, opts...)
	if err != nil {
		return err
	}
	h.term.EnableNotifications()
	h.drawAll()

	go h.readLoop()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err, ok := ev.Data().(error); ok {
				if errors.Is(err, errChildExited) {
					return nil
				}
				return err
			}
			h.drawDamage()
		case *tcell.EventResize:
			h.resize()
		case *tcell.EventKey:
			if ev.Key() == QuitKey {
				return nil
			}
			h.key(ev)
		case *tcell.EventPaste:
			h.paste(ev)
		case *tcell.EventMouse:
			h.mouse(ev)
		case *tcell.EventFocus:
			h.send(h.locked(func() []byte { return h.term.SendFocus(ev.Focused) }))
		}
	}
}

// readLoop feeds child output to the terminal and wakes the event loop.
func (h *host) readLoop() {
	buf := make([]byte, 32*1024)
	for {
		n, err := h.child.Read(buf)
		if n > 0 {
			h.mu.Lock()
			h.term.Feed(buf[:n])
			h.mu.Unlock()
			h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("devshell: read from child: %v", err)
			}
			h.screen.PostEvent(tcell.NewEventInterrupt(errChildExited))
			return
		}
	}
}

func (h *host) locked(fn func() []byte) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn()
}

func (h *host) send(b []byte) {
	if len(b) == 0 {
		return
	}
	if _, err := h.child.Write(b); err != nil {
		log.Printf("devshell: write to child: %v", err)
	}
}

func (h *host) key(ev *tcell.EventKey) {
	if h.inPaste {
		switch ev.Key() {
		case tcell.KeyRune:
			h.pasteBuf = append(h.pasteBuf, ev.Rune())
		case tcell.KeyEnter:
			h.pasteBuf = append(h.pasteBuf, '\r')
		case tcell.KeyTab:
			h.pasteBuf = append(h.pasteBuf, '\t')
		}
		return
	}
	h.send(h.locked(func() []byte { return h.term.SendTcellKey(ev) }))
}

func (h *host) paste(ev *tcell.EventPaste) {
	if ev.Start() {
		h.inPaste = true
		h.pasteBuf = h.pasteBuf[:0]
		return
	}
	h.inPaste = false
	text := string(h.pasteBuf)
	h.send(h.locked(func() []byte { return h.term.SendPaste(text) }))
}

func (h *host) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	prev := h.buttons
	h.buttons = ev.Buttons() &^ (tcell.WheelUp | tcell.WheelDown)
	h.send(h.locked(func() []byte { return h.term.SendTcellMouse(ev, y, x, prev) }))
}

func (h *host) resize() {
	h.screen.Sync()
	cols, rows := h.screen.Size()
	h.mu.Lock()
	err := h.term.Resize(rows, cols)
	h.mu.Unlock()
	if err != nil {
		log.Printf("devshell: %v", err)
		return
	}
	if err := h.child.Resize(rows, cols); err != nil {
		log.Printf("devshell: resize child: %v", err)
	}
	h.drawAll()
}

func (h *host) drawAll() {
	h.mu.Lock()
	rows, cols := h.term.Size()
	h.term.PollNotifications()
	h.drawRect(parser.Rect{EndRow: rows, EndCol: cols})
	h.mu.Unlock()
	h.screen.Show()
}

func (h *host) drawDamage() {
	h.mu.Lock()
	n := h.term.PollNotifications()
	if n.DamagePending {
		h.drawRect(n.Damage)
	}
	h.placeCursor()
	h.mu.Unlock()
	h.screen.Show()
}

// drawRect copies cells to the screen. Called with mu held.
func (h *host) drawRect(r parser.Rect) {
	for row := r.StartRow; row < r.EndRow; row++ {
		for col := r.StartCol; col < r.EndCol; col++ {
			cell, ok := h.term.GetCell(row, col)
			if !ok || cell.Width == 0 {
				continue
			}
			mainc, comb := ' ', []rune(nil)
			if cell.Rune() != 0 {
				mainc = cell.Rune()
				for _, c := range cell.Chars[1:] {
					if c == 0 {
						break
					}
					comb = append(comb, c)
				}
			}
			h.screen.SetContent(col, row, mainc, comb, cellStyle(cell))
		}
	}
	h.placeCursor()
}

func (h *host) placeCursor() {
	if !h.term.CursorVisible() {
		h.screen.HideCursor()
		return
	}
	row, col := h.term.Cursor()
	h.screen.ShowCursor(col, row)
}

func tcellColor(c parser.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(c term.ResolvedCell) tcell.Style {
	fg, bg := tcellColor(c.FG), tcellColor(c.BG)
	if c.Attr&parser.AttrConceal != 0 {
		fg = bg
	}
	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(c.Attr&parser.AttrBold != 0).
		Underline(c.Attr&parser.AttrUnderline != 0).
		Italic(c.Attr&parser.AttrItalic != 0).
		Blink(c.Attr&parser.AttrBlink != 0).
		Reverse(c.Attr&parser.AttrReverse != 0).
		StrikeThrough(c.Attr&parser.AttrStrike != 0)
}
