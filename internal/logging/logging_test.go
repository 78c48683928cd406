// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/janderssonse/appstore/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share the global logger and therefore run sequentially.

//nolint:paralleltest
func TestInit_ConsoleAndLevel(t *testing.T) {
	t.Cleanup(logging.Close)

	var buf bytes.Buffer
	require.NoError(t, logging.Init(logging.Options{Level: "warn", Console: true, Stderr: &buf}))

	log := logging.Get()
	log.Info().Msg("hidden")
	log.Warn().Str("path", "/api/categories").Msg("slow request")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "slow request")
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	logging.SetLevel("bogus")
	assert.Equal(t, zerolog.InfoLevel, logging.Get().GetLevel())
}

//nolint:paralleltest
func TestInit_FileOnly(t *testing.T) {
	t.Cleanup(logging.Close)

	path := filepath.Join(t.TempDir(), "nested", "appstore.log")
	require.NoError(t, logging.Init(logging.Options{Level: "debug", File: path}))

	log := logging.Get()
	log.Debug().Msg("written to file")
	logging.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"written to file"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

//nolint:paralleltest
func TestInit_NoWritersIsSilent(t *testing.T) {
	require.NoError(t, logging.Init(logging.Options{}))
	assert.Equal(t, zerolog.Disabled, logging.Get().GetLevel())
}
