// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/validate.go
// Summary: Range checks for the terminal and corpus sections.

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue marks a setting that is present but unusable.
var ErrInvalidValue = errors.New("invalid config value")

// Validate reports every unusable terminal or corpus setting at once.
// Missing keys are not errors; callers fall back to the defaults.
func Validate(cfg Config) error {
	var errs []error
	bad := func(key string, format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%s: %s: %w", key, fmt.Sprintf(format, args...), ErrInvalidValue))
	}

	rows := cfg.GetInt("terminal", "rows", DefaultRows)
	cols := cfg.GetInt("terminal", "cols", DefaultCols)
	maxCells := cfg.GetInt("terminal", "max_cells", DefaultMaxCells)
	if rows <= 0 {
		bad("terminal.rows", "%d is not positive", rows)
	}
	if cols <= 0 {
		bad("terminal.cols", "%d is not positive", cols)
	}
	if maxCells <= 0 {
		bad("terminal.max_cells", "%d is not positive", maxCells)
	} else if rows > 0 && cols > 0 && rows > maxCells/cols {
		bad("terminal.rows", "%dx%d exceeds max_cells %d", rows, cols, maxCells)
	}
	for _, key := range []string{"default_fg", "default_bg"} {
		if s := cfg.GetString("terminal", key, ""); s != "" {
			if _, err := ParseColor(s); err != nil {
				bad("terminal."+key, "%q is not a #rrggbb color", s)
			}
		}
	}
	if n := cfg.GetInt("corpus", "chunk_size", DefaultChunkSize); n <= 0 {
		bad("corpus.chunk_size", "%d is not positive", n)
	}
	return errors.Join(errs...)
}
