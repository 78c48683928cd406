// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog_test

import (
	"testing"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesOrDefault(t *testing.T) {
	t.Parallel()

	stored := []catalog.Category{{ID: 4, Name: "Games"}}
	assert.Equal(t, stored, catalog.CategoriesOrDefault(stored))

	defaults := catalog.CategoriesOrDefault(nil)
	require.Len(t, defaults, 6)
	assert.Equal(t, "games", defaults[0].Name)

	for _, category := range defaults {
		assert.True(t, category.Placeholder(), category.Name)
	}

	defaults[0].Name = "changed"
	assert.Equal(t, "games", catalog.DefaultCategories[0].Name)
}

func TestFindCategory(t *testing.T) {
	t.Parallel()

	categories := []catalog.Category{{ID: 1, Name: "Games"}, {ID: 2, Name: "Tools"}}

	found, ok := catalog.FindCategory(categories, 2)
	require.True(t, ok)
	assert.Equal(t, "Tools", found.Name)

	_, ok = catalog.FindCategory(categories, 9)
	assert.False(t, ok)
	assert.False(t, found.Placeholder())
}
