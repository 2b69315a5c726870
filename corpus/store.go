// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: corpus/store.go
// Summary: SQLite store of captured program output and expected screens.
//
// A session is one captured run: the terminal size and framing it ran
// with, the output chunks in arrival order, and the screen snapshot taken
// when the capture ended. Replaying the chunks through a fresh terminal
// must reproduce the snapshot.

package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("corpus session not found")

// Session describes one capture.
type Session struct {
	ID        int64
	Name      string
	Command   string
	Rows      int
	Cols      int
	UTF8      bool
	CreatedAt time.Time
}

// Snapshot is the expected screen at the end of a session.
type Snapshot struct {
	Text      string
	CursorRow int
	CursorCol int
	Title     string
}

// Store is a corpus database. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

const corpusSchemaVersion = 1

const corpusSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    command TEXT NOT NULL DEFAULT '',
    height INTEGER NOT NULL,
    width INTEGER NOT NULL,
    utf8 INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL       -- UnixNano
);

CREATE TABLE IF NOT EXISTS chunks (
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    data BLOB NOT NULL,
    PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS snapshots (
    session_id INTEGER PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    cursor_row INTEGER NOT NULL,
    cursor_col INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT ''
);
`

// Open opens or creates the corpus database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(corpusSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// checkSchemaVersion stamps a fresh database and refuses newer ones.
func checkSchemaVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", corpusSchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version > corpusSchemaVersion:
		return fmt.Errorf("corpus schema version %d is newer than supported %d", version, corpusSchemaVersion)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// CreateSession records a new capture and returns it with its id set.
func (s *Store) CreateSession(ctx context.Context, sess Session) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (name, command, height, width, utf8, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		sess.Name, sess.Command, sess.Rows, sess.Cols, boolToInt(sess.UTF8), sess.CreatedAt.UnixNano())
	if err != nil {
		return Session{}, fmt.Errorf("create session %q: %w", sess.Name, err)
	}
	if sess.ID, err = res.LastInsertId(); err != nil {
		return Session{}, fmt.Errorf("create session %q: %w", sess.Name, err)
	}
	log.Printf("Corpus: Created session %d (%s, %dx%d)", sess.ID, sess.Name, sess.Rows, sess.Cols)
	return sess, nil
}

// AppendChunk stores the next output chunk of a session.
func (s *Store) AppendChunk(ctx context.Context, sessionID int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks (session_id, seq, data)
		 VALUES (?, (SELECT COALESCE(MAX(seq), -1) + 1 FROM chunks WHERE session_id = ?), ?)`,
		sessionID, sessionID, data)
	if err != nil {
		return fmt.Errorf("append chunk to session %d: %w", sessionID, err)
	}
	return nil
}

// SaveSnapshot stores (or replaces) the expected final screen.
func (s *Store) SaveSnapshot(ctx context.Context, sessionID int64, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (session_id, text, cursor_row, cursor_col, title) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   text = excluded.text, cursor_row = excluded.cursor_row,
		   cursor_col = excluded.cursor_col, title = excluded.title`,
		sessionID, snap.Text, snap.CursorRow, snap.CursorCol, snap.Title)
	if err != nil {
		return fmt.Errorf("save snapshot for session %d: %w", sessionID, err)
	}
	return nil
}

const sessionColumns = "id, name, command, height, width, utf8, created_at"

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var (
		sess    Session
		utf8    int
		created int64
	)
	if err := row.Scan(&sess.ID, &sess.Name, &sess.Command, &sess.Rows, &sess.Cols, &utf8, &created); err != nil {
		return Session{}, err
	}
	sess.UTF8 = utf8 != 0
	sess.CreatedAt = time.Unix(0, created)
	return sess, nil
}

// Session returns one session by id.
func (s *Store) Session(ctx context.Context, id int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("session %d: %w", id, err)
	}
	return sess, nil
}

// Sessions lists every session, oldest first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, "SELECT "+sessionColumns+" FROM sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Chunks returns a session's output chunks in order.
func (s *Store) Chunks(ctx context.Context, sessionID int64) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM chunks WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, fmt.Errorf("chunks of session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("chunks of session %d: %w", sessionID, err)
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

// Snapshot returns the expected screen of a session.
func (s *Store) Snapshot(ctx context.Context, sessionID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var snap Snapshot
	err := s.db.QueryRowContext(ctx,
		"SELECT text, cursor_row, cursor_col, title FROM snapshots WHERE session_id = ?", sessionID).
		Scan(&snap.Text, &snap.CursorRow, &snap.CursorCol, &snap.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot of session %d: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot of session %d: %w", sessionID, err)
	}
	return snap, nil
}

// DeleteSession removes a session with its chunks and snapshot.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM chunks WHERE session_id = ?",
		"DELETE FROM snapshots WHERE session_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete session %d: %w", id, err)
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete session %d: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
