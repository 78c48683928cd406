// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application holds the use cases shared by the TUI and the CLI.
package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/stringutil"
)

// BrowseFetchSize is how many applications of a category are fetched before
// searching and paging locally.
const BrowseFetchSize = 100

// StorefrontService answers the read side of the store.
type StorefrontService struct {
	source domain.CatalogSource
	t      i18n.Lookup
	now    func() time.Time
}

// NewStorefrontService creates a storefront over source.
func NewStorefrontService(source domain.CatalogSource, t i18n.Lookup) *StorefrontService {
	if t == nil {
		t = i18n.Passthrough()
	}

	return &StorefrontService{source: source, t: t, now: time.Now}
}

// Categories returns the stored categories, or the default set when the
// catalog has none. The bool reports whether the defaults were used.
func (s *StorefrontService) Categories(ctx context.Context) ([]catalog.Category, bool, error) {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list categories: %w", err)
	}

	return catalog.CategoriesOrDefault(categories), len(categories) == 0, nil
}

// CategoriesResult wraps Categories for output.
func (s *StorefrontService) CategoriesResult(ctx context.Context) (domain.CategoriesResult, error) {
	categories, defaults, err := s.Categories(ctx)
	if err != nil {
		return domain.CategoriesResult{}, err
	}

	return domain.CategoriesResult{
		Categories: categories,
		Defaults:   defaults,
		Total:      len(categories),
		Timestamp:  s.now(),
	}, nil
}

// Entries fetches the applications of one category, or of every category
// for catalog.AllCategories. Placeholder categories have no applications.
func (s *StorefrontService) Entries(ctx context.Context, categoryID int) ([]catalog.Application, error) {
	if categoryID < catalog.AllCategories {
		return []catalog.Application{}, nil
	}

	apps, _, err := s.source.ListApplications(ctx, domain.ListParams{
		CategoryID: categoryID,
		Page:       1,
		PageSize:   BrowseFetchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// Browse fetches the query's category and runs the local search and paging
// pipeline over it.
func (s *StorefrontService) Browse(ctx context.Context, query catalog.Query) (catalog.Result, error) {
	entries, err := s.Entries(ctx, query.CategoryID)
	if err != nil {
		return catalog.Result{}, err
	}

	result, err := catalog.View(entries, query)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("failed to build listing: %w", err)
	}

	return result, nil
}

// BrowseResult wraps Browse for output.
func (s *StorefrontService) BrowseResult(ctx context.Context, query catalog.Query) (domain.BrowseResult, error) {
	result, err := s.Browse(ctx, query)
	if err != nil {
		return domain.BrowseResult{}, err
	}

	return domain.BrowseResult{
		Items:      result.Items,
		Pagination: result.Window,
		Pages:      result.Pages,
		Matched:    result.Matched,
		Search:     query.Search,
		CategoryID: query.CategoryID,
		Summary:    s.Summary(result.Window),
		Timestamp:  s.now(),
	}, nil
}

// Summary renders the "showing start to end of total" line.
func (s *StorefrontService) Summary(window catalog.PageWindow) string {
	return s.t("showing", i18n.Params{
		"start": window.Start(),
		"end":   window.End(),
		"total": window.Total,
	})
}

// EmptyMessage explains an empty listing: a no-match notice while searching,
// otherwise the empty category notice.
func (s *StorefrontService) EmptyMessage(query catalog.Query) (string, string) {
	if strings.TrimSpace(query.Search) != "" {
		return s.t("noResults", nil), s.t("noResultsMessage", i18n.Params{"query": query.Search})
	}

	return s.t("noAppsInCategory", nil), ""
}

// Detail returns an application and up to catalog.RelatedShown others from
// the same category. A failing related lookup leaves the list empty.
func (s *StorefrontService) Detail(ctx context.Context, id string) (domain.DetailResult, error) {
	app, err := s.source.GetApplication(ctx, id)
	if err != nil {
		return domain.DetailResult{}, fmt.Errorf("failed to get application %s: %w", id, err)
	}

	result := domain.DetailResult{Application: app, Related: []catalog.Application{}, Timestamp: s.now()}

	if app.CategoryID() == 0 {
		return result, nil
	}

	similar, _, err := s.source.ListApplications(ctx, domain.ListParams{
		CategoryID: app.CategoryID(),
		Page:       1,
		PageSize:   catalog.RelatedFetchSize,
	})
	if err == nil {
		result.Related = catalog.Related(similar, app, catalog.RelatedShown)
	}

	return result, nil
}

// Search runs a server-side name and description search.
func (s *StorefrontService) Search(
	ctx context.Context, search string, page, size int,
) ([]catalog.Application, catalog.PageWindow, error) {
	apps, window, err := s.source.ListApplications(ctx, domain.ListParams{
		Search:   strings.TrimSpace(search),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		return nil, catalog.PageWindow{}, fmt.Errorf("failed to search applications: %w", err)
	}

	return apps, window, nil
}

// CategoryLabel is the display name of a category. Placeholder categories
// are translated, stored ones keep their name.
func CategoryLabel(category catalog.Category, t i18n.Lookup) string {
	if !category.Placeholder() {
		return category.Name
	}

	key := "categories." + category.Name
	if label := t(key, nil); label != key {
		return label
	}

	return stringutil.Title(category.Name)
}
