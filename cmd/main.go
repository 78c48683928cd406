// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for appstore.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/janderssonse/appstore/internal/cli"
	"github.com/janderssonse/appstore/internal/domain"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Only one full-screen storefront per user; scripted commands run freely.
	if opensStorefront(args) {
		lock := flock.New(filepath.Join(os.TempDir(), "appstore.lock"))

		locked, err := lock.TryLock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

			return domain.ExitSystemError
		}

		if !locked {
			fmt.Fprintf(os.Stderr, "Another appstore storefront is already running\n")

			return domain.ExitGeneralError
		}

		defer func() {
			if unlockErr := lock.Unlock(); unlockErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCLI().Run(ctx, args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		if ctx.Err() != nil {
			return domain.ExitInterruptError
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return domain.ExitGeneralError
	}

	return domain.ExitSuccess
}

// valueFlags are the global flags that consume the following argument.
var valueFlags = map[string]bool{ //nolint:gochecknoglobals
	"--config": true, "--api-url": true, "--lang": true, "--color": true, "--timeout": true,
}

// opensStorefront reports whether args launch the interactive storefront:
// no command at all, or "browse".
func opensStorefront(args []string) bool {
	for i := 1; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "browse":
			return true
		case valueFlags[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			return false
		}
	}

	return true
}
