// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/janderssonse/appstore/internal/domain"
	"github.com/rs/zerolog"
)

// FileManager implements the FileManager port for real file operations.
type FileManager struct {
	log zerolog.Logger
}

var _ domain.FileManager = (*FileManager)(nil)

// NewFileManager creates a new file manager.
func NewFileManager(log zerolog.Logger) *FileManager {
	return &FileManager{log: log}
}

// FileExists checks if a file exists.
func (f *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)

	return !errors.Is(err, fs.ErrNotExist)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func (f *FileManager) EnsureDir(path string) error {
	f.log.Debug().Str("path", path).Msg("ensuring directory")

	// #nosec G301 - downloads land in a user-chosen directory
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	return nil
}
