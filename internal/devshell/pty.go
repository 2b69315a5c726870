// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/pty.go
// Summary: Child programs under a pseudo-terminal.

package devshell

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// PTYChild is a command running under a pty.
type PTYChild struct {
	cmd  *exec.Cmd
	ptmx *os.File
}

// StartPTY runs command with args under a pty of the given size.
func StartPTY(command string, args []string, rows, cols int) (*PTYChild, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	return &PTYChild{cmd: cmd, ptmx: ptmx}, nil
}

// PTYFactory adapts StartPTY to a ChildFactory.
func PTYFactory(command string, args ...string) ChildFactory {
	return func(rows, cols int) (Child, error) {
		return StartPTY(command, args, rows, cols)
	}
}

func (c *PTYChild) Read(p []byte) (int, error)  { return c.ptmx.Read(p) }
func (c *PTYChild) Write(p []byte) (int, error) { return c.ptmx.Write(p) }

// Resize updates the pty window size, which signals SIGWINCH to the child.
func (c *PTYChild) Resize(rows, cols int) error {
	return pty.Setsize(c.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Wait waits for the command to exit.
func (c *PTYChild) Wait() error { return c.cmd.Wait() }

// Close hangs up the pty and terminates the command if it is still running.
func (c *PTYChild) Close() error {
	err := c.ptmx.Close()
	if c.cmd.Process != nil && c.cmd.ProcessState == nil {
		c.cmd.Process.Signal(syscall.SIGTERM)
	}
	return err
}
