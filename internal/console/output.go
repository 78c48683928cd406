// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console decides how terminal output is styled and writes the
// human-facing status lines that accompany command results.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode is the value of the --color flag.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ErrInvalidColorMode is returned for unknown --color values.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColorMode, value)
	}
}

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool
	Color   ColorMode

	Stdout *os.File
	Stderr io.Writer

	getenv func(string) string
	isTTY  func(fd uintptr) bool
}

// NewOutputState creates an OutputState bound to the process streams.
func NewOutputState(verbose, jsonOutput, plain bool, color ColorMode) *OutputState {
	return &OutputState{
		Verbose: verbose,
		JSON:    jsonOutput,
		Plain:   plain,
		Color:   color,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		getenv:  os.Getenv,
		isTTY:   IsTTY,
	}
}

// WithEnv replaces the environment and terminal checks (for testing).
func (o *OutputState) WithEnv(getenv func(string) string, isTTY func(fd uintptr) bool) *OutputState {
	o.getenv = getenv
	o.isTTY = isTTY

	return o
}

// IsTTY checks if fd is a terminal (not piped or redirected).
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return IsTTY(os.Stdin.Fd()) && IsTTY(os.Stdout.Fd())
}

// ColorEnabled applies --color, then NO_COLOR and TERM=dumb, then whether
// stdout is a terminal.
func (o *OutputState) ColorEnabled() bool {
	if o.JSON || o.Plain {
		return false
	}

	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
	}

	if o.getenv("NO_COLOR") != "" || o.getenv("TERM") == "dumb" {
		return false
	}

	return o.Stdout != nil && o.isTTY(o.Stdout.Fd())
}

// Bold formats text with bold when colors are on, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	if o.ColorEnabled() {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Header formats section headers consistently.
func (o *OutputState) Header(text string) string {
	return o.Bold(text)
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		_, _ = fmt.Fprintf(o.Stderr, format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		_, _ = fmt.Fprintf(o.Stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr.
func (o *OutputState) Warningf(format string, args ...any) {
	prefix := "⚠ "
	if o.Plain {
		prefix = "warning: "
	}

	_, _ = fmt.Fprintf(o.Stderr, prefix+format+"\n", args...)
}

// Errorf writes error messages to stderr (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	prefix := "✗ "
	if o.Plain {
		prefix = "error: "
	}

	_, _ = fmt.Fprintf(o.Stderr, prefix+format+"\n", args...)
}
