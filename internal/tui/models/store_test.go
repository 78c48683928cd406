// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedStore(t *testing.T, n int) *Store {
	t.Helper()

	svc, _ := newTestServices(t)
	store := NewStore(styles.New(), svc)
	store.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	store.Update(entriesLoadedMsg{categoryID: catalog.AllCategories, entries: sampleApps(n)})

	return store
}

func TestStore_InitialListing(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 15)

	assert.False(t, store.loading)
	assert.Len(t, store.result.Items, catalog.DefaultPageSize)
	assert.Equal(t, 3, store.result.Window.PageCount)
	assert.Contains(t, store.View(), "Showing 1 to 6 of 15 applications")
	assert.Contains(t, store.View(), "App 01")
}

func TestStore_Paging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		wantPage int
	}{
		{"right turns the page", []tea.KeyMsg{keyType(tea.KeyRight)}, 2},
		{"l turns the page", []tea.KeyMsg{keyRunes("l")}, 2},
		{"stops on the last page", []tea.KeyMsg{keyRunes("l"), keyRunes("l"), keyRunes("l")}, 3},
		{"h goes back", []tea.KeyMsg{keyRunes("l"), keyRunes("h")}, 1},
		{"stays on the first page", []tea.KeyMsg{keyType(tea.KeyLeft)}, 1},
		{"digit jumps to a visible page", []tea.KeyMsg{keyRunes("3")}, 3},
		{"digit past the last page is ignored", []tea.KeyMsg{keyRunes("9")}, 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := loadedStore(t, 15)

			for _, msg := range testCase.keys {
				press(t, store, msg)
			}

			assert.Equal(t, testCase.wantPage, store.Query().Page)
			assert.Equal(t, testCase.wantPage, store.result.Window.Page)
		})
	}
}

func TestStore_PageSizeCyclesAndResetsPage(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 30)
	press(t, store, keyRunes("l"))
	require.Equal(t, 2, store.Query().Page)

	for _, want := range []int{12, 24, 6} {
		press(t, store, keyRunes("s"))
		assert.Equal(t, want, store.Query().PageSize)
		assert.Equal(t, 1, store.Query().Page)
	}
}

func TestStore_SearchFiltersLive(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 15)
	press(t, store, keyRunes("l"))

	press(t, store, keyRunes("/"))
	require.True(t, store.CapturesInput())

	press(t, store, keyRunes("1"))
	press(t, store, keyRunes("2"))

	assert.Equal(t, "12", store.Query().Search)
	assert.Equal(t, 1, store.Query().Page)
	assert.Equal(t, 1, store.result.Matched)

	press(t, store, keyType(tea.KeyEnter))
	assert.False(t, store.CapturesInput())
	assert.Equal(t, "12", store.Query().Search)
	assert.Contains(t, store.View(), `Results for "12"`)

	press(t, store, keyType(tea.KeyEsc))
	assert.Empty(t, store.Query().Search)
	assert.Equal(t, 15, store.result.Matched)
}

func TestStore_EscWhileTypingClears(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 4)

	press(t, store, keyRunes("/"))
	press(t, store, keyRunes("zzz"))
	require.True(t, store.result.Empty())

	press(t, store, keyType(tea.KeyEsc))

	assert.False(t, store.CapturesInput())
	assert.Empty(t, store.Query().Search)
	assert.Equal(t, 4, store.result.Matched)
}

func TestStore_EmptyStates(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 3)

	press(t, store, keyRunes("/"))
	press(t, store, keyRunes("nothing"))

	view := store.View()
	assert.Contains(t, view, "No results found")
	assert.Contains(t, view, `No applications match "nothing"`)

	empty := loadedStore(t, 0)
	assert.Contains(t, empty.View(), "There are no applications in this category at the moment.")
}

func TestStore_CategoryTabs(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 3)
	categories := []catalog.Category{{ID: 2, Name: "Tools"}, {ID: 5, Name: "Games"}}
	store.Update(categoriesLoadedMsg{categories: categories})

	cmd := press(t, store, keyType(tea.KeyTab))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, store.Query().CategoryID)
	assert.True(t, store.loading)

	// A late answer for the previous category is dropped.
	store.Update(entriesLoadedMsg{categoryID: catalog.AllCategories, entries: sampleApps(9)})
	assert.True(t, store.loading)

	store.Update(entriesLoadedMsg{categoryID: 2, entries: sampleApps(2)})
	assert.False(t, store.loading)
	assert.Equal(t, 2, store.result.Matched)

	press(t, store, keyType(tea.KeyShiftTab))
	press(t, store, keyType(tea.KeyShiftTab))
	assert.Equal(t, 5, store.Query().CategoryID, "shift+tab wraps around")
}

func TestStore_VanishedCategoryFallsBackToAll(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 3)
	store.Update(categoriesLoadedMsg{categories: []catalog.Category{{ID: 2, Name: "Tools"}}})
	press(t, store, keyType(tea.KeyTab))
	require.Equal(t, 2, store.Query().CategoryID)

	_, cmd := store.Update(categoriesLoadedMsg{categories: []catalog.Category{{ID: 7, Name: "Other"}}})

	assert.NotNil(t, cmd)
	assert.Equal(t, catalog.AllCategories, store.Query().CategoryID)
}

func TestStore_Navigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  tea.KeyMsg
		want NavigateMsg
	}{
		{"enter opens the highlighted app", keyType(tea.KeyEnter), NavigateMsg{Screen: DetailScreen, Data: "2"}},
		{"a opens the admin", keyRunes("a"), NavigateMsg{Screen: AdminScreen, Data: RefreshData}},
		{"? opens the help", keyRunes("?"), NavigateMsg{Screen: HelpScreen}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := loadedStore(t, 5)
			press(t, store, keyType(tea.KeyDown))

			cmd := press(t, store, testCase.key)
			require.NotNil(t, cmd)
			assert.Equal(t, testCase.want, cmd())
		})
	}
}

func TestStore_CursorStaysOnPage(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 3)

	for range 5 {
		press(t, store, keyRunes("j"))
	}

	app, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, app.ID)

	press(t, store, keyRunes("k"))
	app, _ = store.Selected()
	assert.Equal(t, 2, app.ID)
}

func TestStore_LoadError(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	store := NewStore(styles.New(), svc)
	store.Update(entriesLoadedMsg{categoryID: catalog.AllCategories, err: errors.New("connection refused")})

	assert.Contains(t, store.View(), "connection refused")
}

func TestStore_NoticeShowsToast(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, 2)
	_, cmd := store.Update(NoticeMsg{Notice: noticeOf("Link copied", "")})

	require.NotNil(t, cmd)
	assert.True(t, store.toast.Visible())
	assert.Contains(t, store.View(), "Link copied")

	store.Update(dismissToastMsg{seq: store.toast.seq})
	assert.False(t, store.toast.Visible())
}
