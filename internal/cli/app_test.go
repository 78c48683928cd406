// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/testutil"
	"github.com/janderssonse/appstore/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testConfig = `api_url = "http://localhost:1337"
api_token = "secret-token"
page_size = 12
`

type testRun struct {
	cli    *CLI
	source *testutil.MockCatalogSource
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	config string
}

func newTestRun(t *testing.T, opts ...Option) *testRun {
	t.Helper()

	config := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(config, []byte(testConfig), 0o600))

	run := &testRun{
		source: &testutil.MockCatalogSource{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		config: config,
	}

	t.Cleanup(func() { run.source.AssertExpectations(t) })

	base := []Option{
		WithCatalogSource(run.source),
		WithWriters(run.stdout, run.stderr),
		WithInteractive(false),
		WithEnv(func(string) string { return "" }),
	}

	run.cli = NewCLI(append(base, opts...)...)

	return run
}

func (r *testRun) run(args ...string) error {
	return r.cli.Run(context.Background(), append([]string{"appstore", "--config", r.config, "--lang", "en"}, args...))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *domain.ExitError
	require.ErrorAs(t, err, &exitErr)

	return exitErr.Code
}

func fixtureApps(n int) []catalog.Application {
	apps := make([]catalog.Application, 0, n)

	for i := 1; i <= n; i++ {
		apps = append(apps, catalog.Application{
			ID:          i,
			Name:        fmt.Sprintf("App %02d", i),
			Description: "Tool number " + fmt.Sprint(i),
			DownloadURL: fmt.Sprintf("https://example.com/app-%d.zip", i),
			Category:    &catalog.Category{ID: 2, Name: "Tools"},
		})
	}

	return apps
}

func TestNewCLI(t *testing.T) {
	t.Parallel()

	cliApp := NewCLI()

	require.NotNil(t, cliApp.app)
	assert.Equal(t, "appstore", cliApp.app.Name)
	assert.NotEmpty(t, cliApp.app.Usage)
	assert.NotEmpty(t, cliApp.app.Description)

	names := make(map[string]bool)
	for _, cmd := range cliApp.createAllCommands() {
		names[cmd.Name] = true
	}

	for _, expected := range []string{"browse", "apps", "categories", "admin", "config", "version"} {
		assert.True(t, names[expected], "command %s should exist", expected)
	}
}

func TestCLI_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"json and plain conflict", []string{"--json", "--plain", "version"}, domain.ExitUsageError},
		{"bad color mode", []string{"--color", "sometimes", "version"}, domain.ExitUsageError},
		{"unknown command", []string{"frobnicate"}, domain.ExitUsageError},
		{"show without id", []string{"apps", "show"}, domain.ExitUsageError},
		{"search without query", []string{"apps", "search"}, domain.ExitUsageError},
		{"delete with bad id", []string{"admin", "app", "delete", "abc", "--yes"}, domain.ExitUsageError},
		{"browse without a terminal", []string{"browse"}, domain.ExitUsageError},
		{"bad api url", []string{"--api-url", "localhost", "version"}, domain.ExitConfigError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			run := newTestRun(t)

			assert.Equal(t, testCase.wantCode, exitCode(t, run.run(testCase.args...)))
		})
	}
}

func TestCLI_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	err := run.cli.Run(context.Background(), []string{"appstore", "--config", filepath.Join(t.TempDir(), "nope.toml"), "version"})

	assert.Equal(t, domain.ExitConfigError, exitCode(t, err))
}

func TestCLI_Version(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	require.NoError(t, run.run("version"))

	assert.Equal(t, "dev\n", run.stdout.String())
}

func TestCLI_AppsList(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	run.source.On("ListApplications", mock.Anything, mock.MatchedBy(func(params domain.ListParams) bool {
		return params.CategoryID == 0 && params.Page == 1
	})).Return(fixtureApps(15), catalog.PageWindow{}, nil).Once()

	require.NoError(t, run.run("apps", "list", "--page", "2"))

	out := run.stdout.String()
	assert.Contains(t, out, "App 13")
	assert.NotContains(t, out, "App 01")
	assert.Contains(t, out, "Showing 13 to 15 of 15 applications")
	assert.Contains(t, out, "1 [2]")
}

func TestCLI_AppsListJSON(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	run.source.On("ListApplications", mock.Anything, mock.Anything).Return(fixtureApps(5), catalog.PageWindow{}, nil).Once()

	require.NoError(t, run.run("--json", "apps", "list", "--search", "number 3"))

	out := run.stdout.String()
	require.True(t, gjson.Valid(out), out)
	assert.Equal(t, int64(1), gjson.Get(out, "matched").Int())
	assert.Equal(t, "App 03", gjson.Get(out, "items.0.name").String())
}

func TestCLI_AppsListEmpty(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	run.source.On("ListApplications", mock.Anything, mock.Anything).Return([]catalog.Application{}, catalog.PageWindow{}, nil).Once()

	require.NoError(t, run.run("apps", "list", "--search", "zzz"))
	assert.Contains(t, run.stdout.String(), "No results found")
}

func TestCLI_AppsShow(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	apps := fixtureApps(3)
	run.source.On("GetApplication", mock.Anything, "1").Return(apps[0], nil).Once()
	run.source.On("ListApplications", mock.Anything, mock.MatchedBy(func(params domain.ListParams) bool {
		return params.CategoryID == 2
	})).Return(apps, catalog.PageWindow{}, nil).Once()

	require.NoError(t, run.run("apps", "show", "1"))

	out := run.stdout.String()
	assert.Contains(t, out, "App 01")
	assert.Contains(t, out, "#2 App 02")
	assert.Contains(t, out, "https://example.com/app-1.zip")
}

func TestCLI_AppsShowNotFound(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	run.source.On("GetApplication", mock.Anything, "99").
		Return(catalog.Application{}, fmt.Errorf("application 99: %w", domain.ErrNotFound)).Once()

	assert.Equal(t, domain.ExitNotFoundError, exitCode(t, run.run("apps", "show", "99")))
}

func TestCLI_CategoriesListDefaults(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	run.source.On("ListCategories", mock.Anything).Return([]catalog.Category{}, nil).Once()

	require.NoError(t, run.run("categories", "list"))

	assert.Contains(t, run.stderr.String(), "default set")
	assert.Contains(t, run.stdout.String(), "ICON")
}

func TestCLI_AdminDelete(t *testing.T) {
	t.Parallel()

	t.Run("refused without a terminal", func(t *testing.T) {
		t.Parallel()

		run := newTestRun(t)

		assert.Equal(t, domain.ExitUsageError, exitCode(t, run.run("admin", "category", "delete", "2")))
	})

	t.Run("yes skips the confirmation", func(t *testing.T) {
		t.Parallel()

		run := newTestRun(t)
		run.source.On("DeleteCategory", mock.Anything, 2).Return(nil).Once()

		require.NoError(t, run.run("--yes", "admin", "category", "delete", "2"))
		assert.Contains(t, run.stdout.String(), "Category deleted successfully")
	})
}

func TestCLI_AdminCreate(t *testing.T) {
	t.Parallel()

	t.Run("category", func(t *testing.T) {
		t.Parallel()

		run := newTestRun(t)
		run.source.On("CreateCategory", mock.Anything, catalog.CategoryInput{
			Name: "Tools", Icon: "Code", Color: catalog.DefaultColor,
		}).Return(catalog.Category{ID: 7, Name: "Tools"}, nil).Once()

		require.NoError(t, run.run("--json", "admin", "category", "create", "--name", "Tools", "--icon", "Code"))

		out := run.stdout.String()
		assert.Equal(t, "created", gjson.Get(out, "action").String())
		assert.Equal(t, int64(7), gjson.Get(out, "id").Int())
	})

	t.Run("application missing fields", func(t *testing.T) {
		t.Parallel()

		run := newTestRun(t)

		err := run.run("admin", "app", "create", "--name", "Notes")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejected write", func(t *testing.T) {
		t.Parallel()

		run := newTestRun(t)
		run.source.On("UpdateApplication", mock.Anything, 4, mock.Anything).
			Return(catalog.Application{}, fmt.Errorf("update: %w", domain.ErrUnauthorized)).Once()

		assert.Equal(t, domain.ExitPermissionError, exitCode(t, run.run("admin", "app", "update", "4", "--rating", "3")))
	})
}

func TestCLI_ConfigShowMasksToken(t *testing.T) {
	t.Parallel()

	run := newTestRun(t)
	require.NoError(t, run.run("config", "show"))

	out := run.stdout.String()
	assert.Contains(t, out, "http://localhost:1337")
	assert.NotContains(t, out, "secret-token")
}

func TestCLI_BrowseLaunchesStorefront(t *testing.T) {
	t.Parallel()

	var got tui.Services

	run := newTestRun(t, WithInteractive(true), WithTUILauncher(func(_ context.Context, services tui.Services) error {
		got = services

		return nil
	}))

	require.NoError(t, run.run())

	assert.Equal(t, 12, got.PageSize)
	assert.NotNil(t, got.Storefront)
	assert.NotNil(t, got.Admin)
	assert.NotNil(t, got.Links)
	assert.Equal(t, "AppStore", got.Translate("appStore", nil))
}

func TestCLI_BrowseWithoutTerminalFromLauncher(t *testing.T) {
	t.Parallel()

	run := newTestRun(t, WithInteractive(true), WithTUILauncher(func(context.Context, tui.Services) error {
		return fmt.Errorf("terminal check failed: %w", domain.ErrNoTerminal)
	}))

	assert.Equal(t, domain.ExitUsageError, exitCode(t, run.run("browse")))
}
