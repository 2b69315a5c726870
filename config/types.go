// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.

package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/framegrace/texelvt/parser"
	"github.com/lucasb-eyer/go-colorful"
)

// Section returns the named section, the top level for "", or nil.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills in missing keys of a section without touching
// existing ones.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

// Set stores a value, creating the section when needed.
func (c Config) Set(sectionName, key string, value interface{}) {
	if c == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		c[sectionName] = section
	}
	section[key] = value
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	val, ok := section[key]
	return val, ok
}

// toFloat accepts the numeric shapes JSON decoding and callers produce.
func toFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if val, ok := c.lookup(sectionName, key); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat retrieves a float value from the config.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	if val, ok := c.lookup(sectionName, key); ok {
		if f, ok := toFloat(val); ok {
			return f
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value from the config.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	val, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	default:
		if f, ok := toFloat(v); ok {
			return int(f)
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value from the config. Numbers count as
// true when non-zero.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	val, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
	}
	return defaultValue
}

// GetColor reads a "#rgb" or "#rrggbb" string. The result is marked as a
// default color.
func (c Config) GetColor(sectionName, key string, defaultValue parser.RGB) parser.RGB {
	s := c.GetString(sectionName, key, "")
	if s == "" {
		return defaultValue
	}
	rgb, err := ParseColor(s)
	if err != nil {
		return defaultValue
	}
	return rgb
}

// ParseColor parses a hex color string.
func ParseColor(s string) (parser.RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return parser.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return parser.RGB{R: r, G: g, B: b, Default: true}, nil
}
