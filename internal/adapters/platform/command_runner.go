// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform talks to the desktop: launching helper programs, opening
// links and the clipboard.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// CommandRunner starts helper programs such as xdg-open. Output is always
// captured so a running TUI keeps the terminal to itself.
type CommandRunner struct {
	dryRun bool
	log    zerolog.Logger
}

// NewCommandRunner creates a new command runner. With dryRun set, commands
// are logged but never started.
func NewCommandRunner(dryRun bool, log zerolog.Logger) *CommandRunner {
	return &CommandRunner{
		dryRun: dryRun,
		log:    log.With().Str("component", "platform").Logger(),
	}
}

// Execute runs a command and waits for it to finish.
func (r *CommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	r.log.Debug().Str("command", name).Strs("args", args).Bool("dry_run", r.dryRun).Msg("executing")

	if r.dryRun {
		return nil
	}

	// #nosec G204 -- callers pass fixed helper binaries
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if output := strings.TrimSpace(stderr.String()); output != "" {
			return fmt.Errorf("command failed: %w (stderr: %s)", err, output)
		}

		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
