// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/janderssonse/appstore/internal/domain"
)

// ErrClipboardUnavailable is returned when no clipboard helper is installed.
var ErrClipboardUnavailable = errors.New("no clipboard available")

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct {
	write       func(string) error
	unsupported bool
}

var _ domain.Clipboard = (*SystemClipboard)(nil)

// NewClipboard returns the system clipboard.
func NewClipboard() *SystemClipboard {
	return &SystemClipboard{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// Copy places text on the clipboard.
func (c *SystemClipboard) Copy(text string) error {
	if c.unsupported {
		return ErrClipboardUnavailable
	}

	if err := c.write(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return nil
}
