// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt-replay/main.go
// Summary: Replays captured corpus sessions and reports mismatches.
// Usage: texelvt-replay [-db corpus.db] [-session id] [-list] [-delete id]

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/corpus"
	"github.com/framegrace/texelvt/internal/cli"
	"github.com/framegrace/texelvt/term"
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run() (int, error) {
	fs := flag.NewFlagSet("texelvt-replay", flag.ContinueOnError)
	var cf cli.ConfigFlags
	cf.Register(fs)
	dbPath := fs.String("db", "", "Corpus database (default: corpus.path from config)")
	sessionID := fs.Int64("session", 0, "Replay only this session")
	list := fs.Bool("list", false, "List sessions and exit")
	deleteID := fs.Int64("delete", 0, "Delete a session and exit")
	verbose := fs.Bool("v", false, "Print matching sessions too")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 0, err
	}

	cfg, err := cf.Load()
	if err != nil {
		return 0, err
	}
	if *dbPath == "" {
		if *dbPath, err = config.CorpusPath(cfg); err != nil {
			return 0, err
		}
	}

	store, err := corpus.Open(*dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *list:
		return 0, listSessions(ctx, store)
	case *deleteID != 0:
		return 0, store.DeleteSession(ctx, *deleteID)
	}

	// Replays reuse the configured colors and reflow; size and framing
	// come from each session.
	opts := term.OptionsFromConfig(cfg)
	var results []corpus.Result
	if *sessionID != 0 {
		res, err := store.Replay(ctx, *sessionID, opts...)
		if err != nil {
			return 0, err
		}
		results = append(results, res)
	} else if results, err = store.ReplayAll(ctx, opts...); err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range results {
		if !r.Match() {
			failed++
		}
		if !r.Match() || *verbose {
			fmt.Println(r)
		}
	}
	fmt.Printf("%d sessions, %d mismatched\n", len(results), failed)
	if failed > 0 {
		return 1, nil
	}
	return 0, nil
}

func listSessions(ctx context.Context, store *corpus.Store) error {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tUTF8\tCREATED\tCOMMAND")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%v\t%s\t%s\n",
			s.ID, s.Name, s.Rows, s.Cols, s.UTF8, s.CreatedAt.Format(time.DateTime), s.Command)
	}
	return w.Flush()
}
