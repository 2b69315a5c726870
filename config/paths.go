// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelvt configuration and data.

package config

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "TEXELVT_CONFIG_DIR"

const defaultCorpusName = "corpus.db"

// Root returns the configuration directory: $TEXELVT_CONFIG_DIR, or
// texelvt under the user config dir.
func Root() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelvt"), nil
}

func systemConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// SystemConfigPath returns the location of texelvt.json.
func SystemConfigPath() (string, error) { return systemConfigPath() }

// CorpusPath returns corpus.path from cfg, or corpus.db in the config
// directory when unset.
func CorpusPath(cfg Config) (string, error) {
	if p := cfg.GetString("corpus", "path", ""); p != "" {
		return p, nil
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, defaultCorpusName), nil
}
