// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janderssonse/appstore/internal/adapters/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager(t *testing.T) {
	t.Parallel()

	manager := platform.NewFileManager(zerolog.Nop())
	dir := filepath.Join(t.TempDir(), "downloads", "nested")

	assert.False(t, manager.FileExists(dir))
	require.NoError(t, manager.EnsureDir(dir))
	assert.True(t, manager.FileExists(dir))
	require.NoError(t, manager.EnsureDir(dir))

	file := filepath.Join(dir, "vlc.deb")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	assert.True(t, manager.FileExists(file))
}

func TestFileManager_EnsureDirOverFile(t *testing.T) {
	t.Parallel()

	manager := platform.NewFileManager(zerolog.Nop())
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	require.Error(t, manager.EnsureDir(filepath.Join(file, "child")))
}
