// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/config.go
// Summary: Terminal options from the "terminal" config section.

package term

import (
	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/parser"
)

// SizeFromConfig returns terminal.rows and terminal.cols from cfg.
func SizeFromConfig(cfg config.Config) (rows, cols int) {
	return cfg.GetInt("terminal", "rows", config.DefaultRows),
		cfg.GetInt("terminal", "cols", config.DefaultCols)
}

// OptionsFromConfig maps the "terminal" section to construction options.
func OptionsFromConfig(cfg config.Config) []Option {
	fg := cfg.GetColor("terminal", "default_fg", parser.FallbackColors.FG)
	bg := cfg.GetColor("terminal", "default_bg", parser.FallbackColors.BG)
	return []Option{
		WithUTF8(cfg.GetBool("terminal", "utf8", true)),
		WithReflow(cfg.GetBool("terminal", "reflow", true)),
		WithBoldIsBright(cfg.GetBool("terminal", "bold_is_bright", false)),
		WithMaxCells(cfg.GetInt("terminal", "max_cells", DefaultMaxCells)),
		WithDefaultColors(fg, bg),
	}
}

// NewFromConfig creates a terminal sized and configured from cfg. Extra
// options are applied after the configured ones.
func NewFromConfig(cfg config.Config, opts ...Option) (*Terminal, error) {
	rows, cols := SizeFromConfig(cfg)
	return New(rows, cols, append(OptionsFromConfig(cfg), opts...)...)
}
