// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers holds the state every CLI command shares: output mode,
// request deadline and error reporting.
package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	cliAdapter "github.com/janderssonse/appstore/internal/adapters/cli"
	"github.com/janderssonse/appstore/internal/console"
	"github.com/janderssonse/appstore/internal/domain"
)

// Flags are the global command-line switches.
type Flags struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Plain   bool
	Color   console.ColorMode
	Timeout time.Duration
	Yes     bool
}

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Flags

	Output  domain.OutputPort
	Console *console.OutputState
}

// NewBaseHandler creates a handler writing results to out and diagnostics
// to errOut.
func NewBaseHandler(flags Flags, out, errOut io.Writer) *BaseHandler {
	format := cliAdapter.TextFormat
	if flags.JSON {
		format = cliAdapter.JSONFormat
	}

	state := console.NewOutputState(flags.Verbose, flags.JSON, flags.Plain, flags.Color)
	state.Stderr = errOut

	return &BaseHandler{
		Flags:   flags,
		Output:  cliAdapter.NewOutputAdapterWithWriters(out, errOut, format, flags.Quiet),
		Console: state,
	}
}

// WithTimeout applies timeout to context if configured.
func (h *BaseHandler) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout > 0 {
		return context.WithTimeout(ctx, h.Timeout)
	}

	return ctx, func() {}
}

// Fail turns err into an ExitError with a friendly message. fallback is
// the exit code when err carries no better one.
func (h *BaseHandler) Fail(err error, action, subject string, fallback int) error {
	if err == nil {
		return nil
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	message := domain.FormatErrorMessage(err, action, subject, h.Verbose)

	return domain.NewExitError(domain.ExitCodeFor(err, fallback), message, err)
}
