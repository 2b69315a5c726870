// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt-view/main.go
// Summary: Interactive demo host: a shell drawn through the emulator.
// Usage: texelvt-view [-config file] [-set k=v] [command [args...]]
//        Ctrl-Q quits.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/framegrace/texelvt/internal/cli"
	"github.com/framegrace/texelvt/internal/devshell"
	"github.com/framegrace/texelvt/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelvt-view", flag.ContinueOnError)
	var cf cli.ConfigFlags
	cf.Register(fs)
	logPath := fs.String("log", "", "Write logs to this file instead of discarding them")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	// The screen owns the terminal; stray log lines would corrupt it.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := cf.Load()
	if err != nil {
		return err
	}

	command, args := shellCommand(cfg.GetString("corpus", "shell", ""), fs.Args())
	log.Printf("texelvt-view: running %s %v", command, args)
	return devshell.Run(devshell.PTYFactory(command, args...), term.OptionsFromConfig(cfg)...)
}

// shellCommand picks the explicit command, then the configured shell,
// then $SHELL, then /bin/sh.
func shellCommand(configured string, argv []string) (string, []string) {
	if len(argv) > 0 {
		return argv[0], argv[1:]
	}
	if configured != "" {
		return configured, nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, nil
	}
	return "/bin/sh", nil
}
