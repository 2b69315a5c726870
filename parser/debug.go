// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/debug.go
// Summary: Env-gated trace log for unhandled and malformed sequences.
// Usage: Set TEXELVT_DEBUG=1 (and optionally TEXELVT_DEBUG_FILE) to trace.

package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

func debugLogPath() string {
	if p := os.Getenv("TEXELVT_DEBUG_FILE"); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "texelvt-debug.log")
}

// logDebug writes to the debug log if enabled
func logDebug(format string, args ...interface{}) {
	if os.Getenv("TEXELVT_DEBUG") == "" {
		return
	}
	debugFile, err := os.OpenFile(debugLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer debugFile.Close()
	fmt.Fprintf(debugFile, "[VTERM] "+format+"\n", args...)
}

func (v *VTerm) logDebug(format string, args ...interface{}) { logDebug(format, args...) }
