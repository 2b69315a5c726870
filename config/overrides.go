// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/overrides.go
// Summary: Dotted-path reads and edits on raw config JSON.
// Usage: cmd tools accept "-set terminal.rows=30" flags and apply them with
//        ApplyOverrides before decoding.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrBadOverride is returned for an override that is not "path=value".
var ErrBadOverride = errors.New("override must be path=value")

// Lookup reads a dotted path ("terminal.rows") from raw JSON.
func Lookup(raw []byte, path string) gjson.Result {
	return gjson.GetBytes(raw, path)
}

// ApplyOverrides sets each "path=value" on raw JSON. Values that are valid
// JSON (numbers, booleans, quoted strings, objects) are stored as such;
// anything else is stored as a string.
func ApplyOverrides(raw []byte, overrides ...string) ([]byte, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	for _, o := range overrides {
		path, value, ok := strings.Cut(o, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, fmt.Errorf("%q: %w", o, ErrBadOverride)
		}
		var err error
		if gjson.Valid(value) {
			raw, err = sjson.SetRawBytes(raw, path, []byte(value))
		} else {
			raw, err = sjson.SetBytes(raw, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", o, err)
		}
	}
	return raw, nil
}

// WithOverrides returns a copy of c with the overrides applied.
func (c Config) WithOverrides(overrides ...string) (Config, error) {
	if len(overrides) == 0 {
		return Clone(c), nil
	}
	if c == nil {
		c = Config{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	raw, err = ApplyOverrides(raw, overrides...)
	if err != nil {
		return nil, err
	}
	return decode(raw)
}
