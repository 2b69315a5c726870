// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helper for config maps.

package config

// Clone copies the config and each of its sections. Values inside a
// section are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		var src map[string]interface{}
		switch v := raw.(type) {
		case Section:
			src = v
		case map[string]interface{}:
			src = v
		default:
			out[name] = v
			continue
		}
		section := make(Section, len(src))
		for key, value := range src {
			section[key] = value
		}
		out[name] = section
	}
	return out
}
