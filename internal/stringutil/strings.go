// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides display-width aware string helpers for
// terminal output.
package stringutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending with Ellipsis when
// anything was cut. Line breaks are folded into spaces first.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, Ellipsis)
}

// PadRight pads s with spaces to width cells. Wider strings are returned
// unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Fit truncates and then pads s so it takes exactly width cells.
func Fit(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}

// Title capitalises each word of s for display, e.g. "photo editing" becomes
// "Photo Editing".
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// ContainsIgnoreCase checks whether text contains substr, ignoring case.
func ContainsIgnoreCase(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}
