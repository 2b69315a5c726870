// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: corpus/replay.go
// Summary: Replaying stored sessions and comparing against snapshots.

package corpus

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/framegrace/texelvt/term"
)

// Result is the outcome of replaying one session.
type Result struct {
	Session  Session
	Want     Snapshot
	Got      Snapshot
	DiffLine int // first differing row, -1 when the text matches

	// StaleCells counts cells where a host redrawing only polled damage
	// would show something other than the grid.
	StaleCells int
}

// Match reports whether the replay reproduced the snapshot exactly.
func (r Result) Match() bool {
	return r.DiffLine < 0 && r.StaleCells == 0 && r.Want.CursorRow == r.Got.CursorRow &&
		r.Want.CursorCol == r.Got.CursorCol && r.Want.Title == r.Got.Title
}

// String summarises the result on one line.
func (r Result) String() string {
	if r.Match() {
		return fmt.Sprintf("session %d (%s): ok", r.Session.ID, r.Session.Name)
	}
	if r.StaleCells > 0 {
		return fmt.Sprintf("session %d (%s): %d cells missed by damage tracking",
			r.Session.ID, r.Session.Name, r.StaleCells)
	}
	if r.DiffLine >= 0 {
		want, got := line(r.Want.Text, r.DiffLine), line(r.Got.Text, r.DiffLine)
		return fmt.Sprintf("session %d (%s): row %d differs: want %q, got %q",
			r.Session.ID, r.Session.Name, r.DiffLine, want, got)
	}
	return fmt.Sprintf("session %d (%s): cursor (%d,%d) title %q, want (%d,%d) %q",
		r.Session.ID, r.Session.Name, r.Got.CursorRow, r.Got.CursorCol, r.Got.Title,
		r.Want.CursorRow, r.Want.CursorCol, r.Want.Title)
}

// Replay feeds a session's chunks through a fresh terminal and compares
// the final screen against the stored snapshot.
func (s *Store) Replay(ctx context.Context, id int64, opts ...term.Option) (Result, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return Result{}, err
	}
	want, err := s.Snapshot(ctx, id)
	if err != nil {
		return Result{}, err
	}
	chunks, err := s.Chunks(ctx, id)
	if err != nil {
		return Result{}, err
	}

	opts = append([]term.Option{term.WithUTF8(sess.UTF8)}, opts...)
	t, err := term.New(sess.Rows, sess.Cols, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("replay session %d: %w", id, err)
	}
	defer t.Close()

	mirror := newRenderMirror(t)
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		t.Feed(c)
		mirror.sync(t)
	}

	got := SnapshotOf(t)
	return Result{
		Session:    sess,
		Want:       want,
		Got:        got,
		DiffLine:   firstDiff(want.Text, got.Text),
		StaleCells: mirror.stale(t),
	}, nil
}

// ReplayAll replays every session that has a snapshot.
func (s *Store) ReplayAll(ctx context.Context, opts ...term.Option) ([]Result, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, sess := range sessions {
		res, err := s.Replay(ctx, sess.ID, opts...)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			log.Printf("Corpus: Skipping session %d: %v", sess.ID, err)
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func firstDiff(want, got string) int {
	w, g := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < max(len(w), len(g)); i++ {
		if i >= len(w) || i >= len(g) || w[i] != g[i] {
			return i
		}
	}
	return -1
}

func line(text string, n int) string {
	lines := strings.Split(text, "\n")
	if n < len(lines) {
		return lines[n]
	}
	return ""
}

// renderMirror is a screen copy refreshed only from polled damage, the
// way an incremental renderer would maintain it.
type renderMirror struct {
	cells [][]term.ResolvedCell
}

func newRenderMirror(t *term.Terminal) *renderMirror {
	rows, cols := t.Size()
	m := &renderMirror{cells: make([][]term.ResolvedCell, rows)}
	for r := range m.cells {
		m.cells[r] = make([]term.ResolvedCell, cols)
		for c := range m.cells[r] {
			m.cells[r][c], _ = t.GetCell(r, c)
		}
	}
	t.EnableNotifications()
	return m
}

func (m *renderMirror) sync(t *term.Terminal) {
	n := t.PollNotifications()
	if !n.DamagePending {
		return
	}
	d := n.Damage
	for r := d.StartRow; r < d.EndRow && r < len(m.cells); r++ {
		for c := d.StartCol; c < d.EndCol && c < len(m.cells[r]); c++ {
			m.cells[r][c], _ = t.GetCell(r, c)
		}
	}
}

func (m *renderMirror) stale(t *term.Terminal) int {
	n := 0
	for r := range m.cells {
		for c := range m.cells[r] {
			if cell, _ := t.GetCell(r, c); cell != m.cells[r][c] {
				n++
			}
		}
	}
	return n
}
