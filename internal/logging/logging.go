// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package logging owns the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global structured logger.
//
//nolint:gochecknoglobals // application-wide logger
var Logger = zerolog.Nop()

//nolint:gochecknoglobals // guards Logger and logFile
var (
	logMu   sync.RWMutex
	logFile *os.File
)

// Options controls where log records go.
type Options struct {
	Level string
	// File, when set, receives every record in addition to the console.
	File string
	// Console writes human-readable records to Stderr. It is switched off
	// while the full-screen TUI owns the terminal.
	Console bool
	// Stderr overrides os.Stderr, for tests.
	Stderr io.Writer
}

// Init replaces the global logger. An unparsable level falls back to info.
func Init(opts Options) error {
	logMu.Lock()
	defer logMu.Unlock()

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	closeFileLocked()

	var writers []io.Writer

	if opts.Console {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}

		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		logFile = file
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		Logger = zerolog.Nop()

		return nil
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	return nil
}

// SetLevel changes the level of the global logger.
func SetLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	Logger = Logger.Level(lvl)
}

// Get returns a copy of the global logger.
func Get() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()

	return Logger
}

// Close releases the log file, if any, and silences the logger.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()

	closeFileLocked()
}

func closeFileLocked() {
	if logFile == nil {
		return
	}

	_ = logFile.Close()
	logFile = nil
	Logger = zerolog.Nop()
}
