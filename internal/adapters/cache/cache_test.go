// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/janderssonse/appstore/internal/adapters/cache"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCached(t *testing.T) (*cache.CachedSource, *testutil.MockCatalogSource) {
	t.Helper()

	source := &testutil.MockCatalogSource{}
	t.Cleanup(func() { source.AssertExpectations(t) })

	cached, ok := cache.NewCachedSource(source, 16, time.Minute, zerolog.Nop()).(*cache.CachedSource)
	require.True(t, ok)

	return cached, source
}

func TestNewCachedSource_ZeroTTLDisablesCache(t *testing.T) {
	t.Parallel()

	source := &testutil.MockCatalogSource{}
	assert.Same(t, source, cache.NewCachedSource(source, 16, 0, zerolog.Nop()))
}

func TestListCategories_Cached(t *testing.T) {
	t.Parallel()

	cached, source := newCached(t)
	ctx := context.Background()

	categories := []catalog.Category{{ID: 1, Name: "Games"}}
	source.On("ListCategories", ctx).Return(categories, nil).Once()

	first, err := cached.ListCategories(ctx)
	require.NoError(t, err)

	first[0].Name = "mutated by caller"

	second, err := cached.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Games", second[0].Name)
}

func TestListApplications_KeyedByParams(t *testing.T) {
	t.Parallel()

	cached, source := newCached(t)
	ctx := context.Background()

	pageOne := domain.ListParams{CategoryID: 2, Page: 1, PageSize: 100}
	pageTwo := domain.ListParams{CategoryID: 2, Page: 2, PageSize: 100}
	window := catalog.PageWindow{Page: 1, PageSize: 100, PageCount: 1, Total: 1}

	source.On("ListApplications", ctx, pageOne).Return([]catalog.Application{{ID: 1}}, window, nil).Once()
	source.On("ListApplications", ctx, pageTwo).Return([]catalog.Application{}, window, nil).Once()

	for range 2 {
		apps, got, err := cached.ListApplications(ctx, pageOne)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
		assert.Equal(t, window, got)
	}

	_, _, err := cached.ListApplications(ctx, pageTwo)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Len())
}

func TestErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	cached, source := newCached(t)
	ctx := context.Background()

	source.On("GetApplication", ctx, "7").Return(catalog.Application{}, domain.ErrNetworkFailure).Once()
	source.On("GetApplication", ctx, "7").Return(catalog.Application{ID: 7, Name: "VLC"}, nil).Once()

	_, err := cached.GetApplication(ctx, "7")
	require.ErrorIs(t, err, domain.ErrNetworkFailure)

	app, err := cached.GetApplication(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "VLC", app.Name)

	app, err = cached.GetApplication(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, app.ID)
}

func TestMutationsInvalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name            string
		mutate          func(*cache.CachedSource, *testutil.MockCatalogSource) error
		keepsCategories bool
		keepsApps       bool
	}{
		{
			name: "create category",
			mutate: func(c *cache.CachedSource, s *testutil.MockCatalogSource) error {
				s.On("CreateCategory", ctx, mock.Anything).Return(catalog.Category{ID: 5}, nil)
				_, err := c.CreateCategory(ctx, catalog.CategoryInput{Name: "Tools"})

				return err
			},
			keepsApps: true,
		},
		{
			name: "delete category",
			mutate: func(c *cache.CachedSource, s *testutil.MockCatalogSource) error {
				s.On("DeleteCategory", ctx, 1).Return(nil)

				return c.DeleteCategory(ctx, 1)
			},
		},
		{
			name: "update application",
			mutate: func(c *cache.CachedSource, s *testutil.MockCatalogSource) error {
				s.On("UpdateApplication", ctx, 3, mock.Anything).Return(catalog.Application{ID: 3}, nil)
				_, err := c.UpdateApplication(ctx, 3, catalog.ApplicationInput{Name: "x"})

				return err
			},
			keepsCategories: true,
		},
		{
			name: "failed delete keeps everything",
			mutate: func(c *cache.CachedSource, s *testutil.MockCatalogSource) error {
				s.On("DeleteApplication", ctx, 3).Return(errors.New("boom"))
				_ = c.DeleteApplication(ctx, 3)

				return nil
			},
			keepsCategories: true,
			keepsApps:       true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cached, source := newCached(t)

			source.On("ListCategories", ctx).Return([]catalog.Category{{ID: 1}}, nil)
			source.On("GetCategory", ctx, 1).Return(catalog.Category{ID: 1}, nil)
			source.On("GetApplication", ctx, "3").Return(catalog.Application{ID: 3}, nil)

			_, err := cached.ListCategories(ctx)
			require.NoError(t, err)
			_, err = cached.GetCategory(ctx, 1)
			require.NoError(t, err)
			_, err = cached.GetApplication(ctx, "3")
			require.NoError(t, err)
			require.Equal(t, 3, cached.Len())

			require.NoError(t, testCase.mutate(cached, source))

			_, _ = cached.ListCategories(ctx)
			_, _ = cached.GetCategory(ctx, 1)
			_, _ = cached.GetApplication(ctx, "3")

			expectedCategoryCalls := 2
			if testCase.keepsCategories {
				expectedCategoryCalls = 1
			}

			expectedAppCalls := 2
			if testCase.keepsApps {
				expectedAppCalls = 1
			}

			source.AssertNumberOfCalls(t, "ListCategories", expectedCategoryCalls)
			source.AssertNumberOfCalls(t, "GetCategory", expectedCategoryCalls)
			source.AssertNumberOfCalls(t, "GetApplication", expectedAppCalls)
		})
	}
}

func TestInvalidateAndPurge(t *testing.T) {
	t.Parallel()

	cached, source := newCached(t)
	ctx := context.Background()

	source.On("ListCategories", ctx).Return([]catalog.Category{}, nil)
	source.On("GetApplication", ctx, "1").Return(catalog.Application{ID: 1}, nil)

	_, _ = cached.ListCategories(ctx)
	_, _ = cached.GetApplication(ctx, "1")
	require.Equal(t, 2, cached.Len())

	cached.Invalidate("applications")
	assert.Equal(t, 1, cached.Len())

	cached.Purge()
	assert.Zero(t, cached.Len())
}
