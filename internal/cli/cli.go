// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/cli.go
// Summary: Flag and configuration plumbing shared by the cmd tools.

package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/framegrace/texelvt/config"
)

// StringList is a repeatable string flag.
type StringList []string

func (l *StringList) String() string { return strings.Join(*l, ",") }

// Set appends a value.
func (l *StringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// ConfigFlags are the flags every tool accepts.
type ConfigFlags struct {
	Path      string
	Overrides StringList
}

// Register adds -config and -set to fs.
func (c *ConfigFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.Path, "config", "", "Config file (default: texelvt.json in the config dir)")
	fs.Var(&c.Overrides, "set", "Override a config value, e.g. -set terminal.rows=30 (repeatable)")
}

// Load returns the configuration selected by the flags with overrides
// applied and validated.
func (c *ConfigFlags) Load() (config.Config, error) {
	var cfg config.Config
	if c.Path != "" {
		loaded, err := config.Load(c.Path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.System()
		if err := config.Err(); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	cfg, err := cfg.WithOverrides(c.Overrides...)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
