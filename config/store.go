// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Loading texelvt.json into the process-wide store.

package config

import (
	"log"
	"sync"

	"github.com/framegrace/texelvt/defaults"
)

var embedded = sync.OnceValues(func() (Config, error) {
	data, err := defaults.SystemConfig()
	if err != nil {
		return nil, err
	}
	return decode(data)
})

// seedConfig returns a private copy of the embedded texelvt.json with the
// registered defaults applied on top.
func seedConfig() Config {
	cfg := make(Config)
	def, err := embedded()
	if err != nil {
		log.Printf("Config: Embedded defaults unreadable: %v", err)
	} else if def != nil {
		cfg = Clone(def)
	}
	applySystemDefaults(cfg)
	return cfg
}

// loadSystemLocked reads texelvt.json into system. A missing or empty file
// is seeded from the embedded defaults and written back.
func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		system = seedConfig()
		return err
	}

	cfg, exists, err := readConfig(path)
	switch {
	case err != nil:
		log.Printf("Config: Failed to read %s: %v", path, err)
		system = seedConfig()
		return err
	case !exists || len(cfg) == 0:
		system = seedConfig()
		if err := writeConfig(path, system); err != nil {
			log.Printf("Config: Failed to write default config: %v", err)
			return err
		}
		return nil
	}

	applySystemDefaults(cfg)
	system = cfg
	log.Printf("Config: Loaded config from %s", path)
	if err := Validate(cfg); err != nil {
		log.Printf("Config: %s: %v", path, err)
		return err
	}
	return nil
}
