// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli implements the output adapter for CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/stringutil"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = "text"
	// JSONFormat outputs machine-readable JSON.
	JSONFormat OutputFormat = "json"
)

// DefaultMaxColumnWidth caps table cells. Longer values are truncated.
const DefaultMaxColumnWidth = 48

const columnGap = "  "

// ErrUnsupportedFormat is returned for unknown --output values.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// OutputAdapter implements domain.OutputPort for CLI output. Results go to
// stdout, diagnostics to stderr.
type OutputAdapter struct {
	out            io.Writer
	errOut         io.Writer
	format         OutputFormat
	quiet          bool
	maxColumnWidth int
}

var _ domain.OutputPort = (*OutputAdapter)(nil)

// NewOutputAdapter creates an adapter writing to the process streams.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriters(os.Stdout, os.Stderr, format, quiet)
}

// NewOutputAdapterWithWriters creates an adapter with explicit streams (for testing).
func NewOutputAdapterWithWriters(out, errOut io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		out:            out,
		errOut:         errOut,
		format:         format,
		quiet:          quiet,
		maxColumnWidth: DefaultMaxColumnWidth,
	}
}

// WithMaxColumnWidth changes the table cell cap. Zero or less disables it.
func (o *OutputAdapter) WithMaxColumnWidth(width int) *OutputAdapter {
	o.maxColumnWidth = width

	return o
}

// Success prints message, or data as JSON in JSON mode.
func (o *OutputAdapter) Success(message string, data any) error {
	if o.format == JSONFormat {
		if data == nil {
			return o.writeJSON(map[string]string{"status": "success", "message": message})
		}

		return o.writeJSON(data)
	}

	if o.quiet || message == "" {
		return nil
	}

	_, err := fmt.Fprintln(o.out, message)

	return err
}

// Error prints an error to stderr. Errors are never suppressed.
func (o *OutputAdapter) Error(message string) error {
	if o.format == JSONFormat {
		return json.NewEncoder(o.errOut).Encode(map[string]string{"status": "error", "error": message})
	}

	_, err := fmt.Fprintln(o.errOut, "Error: "+message)

	return err
}

// Info prints an informational line to stderr unless quiet or in JSON mode.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, err := fmt.Fprintln(o.errOut, message)

	return err
}

// Progress prints a progress line to stderr unless quiet or in JSON mode.
func (o *OutputAdapter) Progress(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, err := fmt.Fprintln(o.errOut, "→ "+message)

	return err
}

// Table prints rows aligned by display width. In JSON mode each row becomes
// an object keyed by the lowercased header.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.format == JSONFormat {
		return o.writeJSON(tableObjects(headers, rows))
	}

	widths := o.columnWidths(headers, rows)

	var builder strings.Builder

	o.writeRow(&builder, headers, widths)

	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}

	o.writeRow(&builder, separators, widths)

	for _, row := range rows {
		o.writeRow(&builder, row, widths)
	}

	_, err := io.WriteString(o.out, builder.String())

	return err
}

// IsQuiet reports whether informational output is suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

func (o *OutputAdapter) cell(value string) string {
	if o.maxColumnWidth > 0 {
		return stringutil.Truncate(value, o.maxColumnWidth)
	}

	return value
}

func (o *OutputAdapter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))

	for i, header := range headers {
		widths[i] = stringutil.Width(o.cell(header))
	}

	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], stringutil.Width(o.cell(row[i])))
		}
	}

	return widths
}

func (o *OutputAdapter) writeRow(builder *strings.Builder, row []string, widths []int) {
	for i, width := range widths {
		value := ""
		if i < len(row) {
			value = o.cell(row[i])
		}

		if i == len(widths)-1 {
			builder.WriteString(value)

			break
		}

		builder.WriteString(stringutil.PadRight(value, width))
		builder.WriteString(columnGap)
	}

	builder.WriteString("\n")
}

func tableObjects(headers []string, rows [][]string) []map[string]string {
	objects := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		object := make(map[string]string, len(headers))

		for i, header := range headers {
			if i < len(row) {
				object[strings.ToLower(header)] = row[i]
			}
		}

		objects = append(objects, object)
	}

	return objects
}

func (o *OutputAdapter) writeJSON(data any) error {
	encoder := json.NewEncoder(o.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}

	return nil
}

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// OutputFromContext picks the adapter for the global --json and --quiet flags.
func OutputFromContext(jsonOutput, quiet bool) *OutputAdapter {
	if jsonOutput {
		return NewOutputAdapter(JSONFormat, quiet)
	}

	return NewOutputAdapter(TextFormat, quiet)
}
