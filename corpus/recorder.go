// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: corpus/recorder.go
// Summary: Recorder - captures program output into a corpus session.
// Usage: Create with NewRecorder, copy the program's output into it (it is
//        an io.Writer), then call Finish to store the expected screen.

package corpus

import (
	"context"
	"fmt"

	"github.com/framegrace/texelvt/term"
)

// DefaultChunkSize bounds a stored chunk when none is configured.
const DefaultChunkSize = 4096

// Recorder stores every write as chunks of a session and feeds it to a
// terminal of the session's size, whose final screen becomes the snapshot.
type Recorder struct {
	ctx       context.Context
	store     *Store
	session   Session
	term      *term.Terminal
	chunkSize int
}

// NewRecorder creates the session and its shadow terminal. Extra options
// are passed to the terminal.
func NewRecorder(ctx context.Context, store *Store, sess Session, chunkSize int, opts ...term.Option) (*Recorder, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	opts = append([]term.Option{term.WithUTF8(sess.UTF8)}, opts...)
	t, err := term.New(sess.Rows, sess.Cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	sess, err = store.CreateSession(ctx, sess)
	if err != nil {
		t.Close()
		return nil, err
	}
	return &Recorder{ctx: ctx, store: store, session: sess, term: t, chunkSize: chunkSize}, nil
}

// Session returns the session being recorded.
func (r *Recorder) Session() Session { return r.session }

// Write stores p, split at the chunk size, and feeds it to the terminal.
func (r *Recorder) Write(p []byte) (int, error) {
	for off := 0; off < len(p); off += r.chunkSize {
		end := min(off+r.chunkSize, len(p))
		chunk := append([]byte(nil), p[off:end]...)
		if err := r.store.AppendChunk(r.ctx, r.session.ID, chunk); err != nil {
			return off, err
		}
		r.term.Feed(chunk)
	}
	return len(p), nil
}

// Finish stores the terminal's current screen as the expected snapshot.
func (r *Recorder) Finish() (Snapshot, error) {
	snap := SnapshotOf(r.term)
	if err := r.store.SaveSnapshot(r.ctx, r.session.ID, snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// SnapshotOf captures the screen text, cursor and title of t.
func SnapshotOf(t *term.Terminal) Snapshot {
	row, col := t.Cursor()
	return Snapshot{Text: t.Text(), CursorRow: row, CursorCol: col, Title: t.Title()}
}
