// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import "embed"

//go:embed texelvt.json
var fs embed.FS

// SystemConfig returns the embedded texelvt.json.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("texelvt.json")
}
