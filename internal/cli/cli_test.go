// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"flag"
	"path/filepath"
	"testing"

	"github.com/framegrace/texelvt/config"
)

func TestConfigFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelvt.json")
	if err := config.Save(path, config.Config{
		"terminal": map[string]interface{}{"rows": 30},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var cf ConfigFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cf.Register(fs)
	if err := fs.Parse([]string{"-config", path, "-set", "terminal.cols=100", "-set", "corpus.chunk_size=16"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cf.Overrides) != 2 {
		t.Fatalf("overrides = %v", cf.Overrides)
	}

	cfg, err := cf.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.GetInt("terminal", "rows", 0); got != 30 {
		t.Errorf("rows = %d", got)
	}
	if got := cfg.GetInt("terminal", "cols", 0); got != 100 {
		t.Errorf("cols = %d", got)
	}
	if got := cfg.GetInt("corpus", "chunk_size", 0); got != 16 {
		t.Errorf("chunk_size = %d", got)
	}
	if !cfg.GetBool("terminal", "utf8", false) {
		t.Error("defaults should fill terminal.utf8")
	}
}

func TestConfigFlagsRejectBadOverride(t *testing.T) {
	cf := ConfigFlags{Path: filepath.Join(t.TempDir(), "missing.json"), Overrides: StringList{"nope"}}
	if _, err := cf.Load(); err == nil {
		t.Fatal("expected an error for a malformed override")
	}
}

func TestConfigFlagsRejectInvalidValue(t *testing.T) {
	cf := ConfigFlags{Path: filepath.Join(t.TempDir(), "missing.json"), Overrides: StringList{"terminal.rows=0"}}
	if _, err := cf.Load(); !errors.Is(err, config.ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}
