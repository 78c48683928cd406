// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	source    *testutil.MockCatalogSource
	opener    *testutil.MockURLOpener
	clipboard *testutil.MockClipboard
}

func newTestServices(t *testing.T) (Services, testDeps) {
	t.Helper()

	bundle, err := i18n.Load()
	require.NoError(t, err)

	lookup := bundle.Lookup("en")

	deps := testDeps{
		source:    &testutil.MockCatalogSource{},
		opener:    &testutil.MockURLOpener{},
		clipboard: &testutil.MockClipboard{},
	}

	t.Cleanup(func() {
		deps.source.AssertExpectations(t)
		deps.opener.AssertExpectations(t)
		deps.clipboard.AssertExpectations(t)
	})

	return Services{
		Storefront: application.NewStorefrontService(deps.source, lookup),
		Admin:      application.NewAdminService(deps.source, lookup),
		Links: application.NewLinkService(
			deps.opener, deps.clipboard, &testutil.MockNetworkClient{}, &testutil.MockFileManager{}, lookup,
		),
		T:        lookup,
		PageSize: catalog.DefaultPageSize,
	}, deps
}

func sampleApps(n int) []catalog.Application {
	apps := make([]catalog.Application, 0, n)

	for i := 1; i <= n; i++ {
		rating := 4.0
		apps = append(apps, catalog.Application{
			ID:          i,
			Name:        fmt.Sprintf("App %02d", i),
			Description: "Handy tool number " + fmt.Sprint(i),
			DownloadURL: fmt.Sprintf("https://example.com/app-%d.zip", i),
			Rating:      &rating,
			Downloads:   "1K+",
			Category:    &catalog.Category{ID: 2, Name: "Tools", Icon: "Code", Color: "bg-green-500"},
		})
	}

	return apps
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

// press feeds a key to model and returns the command it produced.
func press(t *testing.T, model tea.Model, msg tea.KeyMsg) tea.Cmd {
	t.Helper()

	_, cmd := model.Update(msg)

	return cmd
}

func noticeOf(title, message string) application.Notice {
	return application.Notice{Title: title, Message: message}
}
