// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for texelvt.json.

package config

// Terminal defaults, mirrored in defaults/texelvt.json.
const (
	DefaultRows      = 24
	DefaultCols      = 80
	DefaultMaxCells  = 1 << 22
	DefaultChunkSize = 4096
	DefaultFG        = "#ffffff"
	DefaultBG        = "#000000"
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("terminal", Section{
		"rows":           DefaultRows,
		"cols":           DefaultCols,
		"utf8":           true,
		"reflow":         true,
		"bold_is_bright": false,
		"max_cells":      DefaultMaxCells,
		"default_fg":     DefaultFG,
		"default_bg":     DefaultBG,
	})
	cfg.RegisterDefaults("corpus", Section{
		"path":       "",
		"chunk_size": DefaultChunkSize,
		"shell":      "",
	})
}
