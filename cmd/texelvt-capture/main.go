// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt-capture/main.go
// Summary: Runs a command under a pty and records its output into the corpus.
// Usage: texelvt-capture [-name n] [-rows r -cols c] [-db corpus.db] [-echo] -- command [args...]
//
// The recording terminal answers the program's queries (DSR, DA, OSC
// colors) through the pty, so programs that probe the terminal behave as
// they would under a real one. With -echo the output is also shown and
// stdin is forwarded in raw mode, which makes the capture interactive.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/corpus"
	"github.com/framegrace/texelvt/internal/cli"
	"github.com/framegrace/texelvt/internal/devshell"
	vt "github.com/framegrace/texelvt/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelvt-capture", flag.ContinueOnError)
	var cf cli.ConfigFlags
	cf.Register(fs)
	name := fs.String("name", "", "Session name (default: the command line)")
	rows := fs.Int("rows", 0, "Terminal rows (default: current terminal, then config)")
	cols := fs.Int("cols", 0, "Terminal columns (default: current terminal, then config)")
	dbPath := fs.String("db", "", "Corpus database (default: corpus.path from config)")
	chunk := fs.Int("chunk", 0, "Maximum stored chunk size in bytes (default: corpus.chunk_size)")
	echo := fs.Bool("echo", false, "Show output and forward stdin while capturing")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	cfg, err := cf.Load()
	if err != nil {
		return err
	}
	r, c := captureSize(cfg, *rows, *cols)
	if *dbPath == "" {
		if *dbPath, err = config.CorpusPath(cfg); err != nil {
			return err
		}
	}
	if *chunk == 0 {
		*chunk = cfg.GetInt("corpus", "chunk_size", corpus.DefaultChunkSize)
	}
	command := strings.Join(fs.Args(), " ")
	if *name == "" {
		*name = command
	}

	store, err := corpus.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	child, err := devshell.StartPTY(fs.Arg(0), fs.Args()[1:], r, c)
	if err != nil {
		return err
	}
	defer child.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := append(vt.OptionsFromConfig(cfg), vt.WithOutput(child))
	rec, err := corpus.NewRecorder(ctx, store, corpus.Session{
		Name:    *name,
		Command: command,
		Rows:    r,
		Cols:    c,
		UTF8:    cfg.GetBool("terminal", "utf8", true),
	}, *chunk, opts...)
	if err != nil {
		return err
	}

	var out io.Writer = rec
	if *echo {
		out = io.MultiWriter(rec, os.Stdout)
		if term.IsTerminal(int(os.Stdin.Fd())) {
			oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("raw mode: %w", err)
			}
			defer term.Restore(int(os.Stdin.Fd()), oldState)
		}
		go io.Copy(child, os.Stdin)
	}

	copied := make(chan error, 1)
	go func() {
		_, err := io.Copy(out, child)
		copied <- err
	}()

	select {
	case err = <-copied:
		// Reading the pty master fails with EIO once the child side closes.
		if errors.Is(err, syscall.EIO) {
			err = nil
		}
	case <-ctx.Done():
		log.Printf("texelvt-capture: interrupted, saving what was captured")
		child.Close()
		<-copied
	}
	child.Close()
	if werr := child.Wait(); werr != nil {
		log.Printf("texelvt-capture: %s: %v", fs.Arg(0), werr)
	}
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	snap, err := rec.Finish()
	if err != nil {
		return err
	}
	sess := rec.Session()
	if *echo {
		fmt.Fprint(os.Stderr, "\r\n")
	}
	fmt.Fprintf(os.Stderr, "Captured session %d (%q, %dx%d), cursor at %d,%d into %s\n",
		sess.ID, sess.Name, sess.Rows, sess.Cols, snap.CursorRow, snap.CursorCol, *dbPath)
	return nil
}

// captureSize resolves the session size: explicit flags win, then the
// size of the controlling terminal, then the configured size.
func captureSize(cfg config.Config, rows, cols int) (int, int) {
	if rows > 0 && cols > 0 {
		return rows, cols
	}
	r, c := vt.SizeFromConfig(cfg)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		r, c = h, w
	}
	if rows > 0 {
		r = rows
	}
	if cols > 0 {
		c = cols
	}
	return r, c
}
