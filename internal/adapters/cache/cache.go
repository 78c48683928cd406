// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cache decorates a catalog source with a short-lived query cache.
package cache

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/rs/zerolog"
)

// Defaults for NewCachedSource.
const (
	DefaultTTL  = 5 * time.Minute
	DefaultSize = 256
)

// Key prefixes. Every key starts with one of them.
const (
	categoriesKey   = "categories"
	applicationsKey = "applications"
)

type applicationPage struct {
	apps   []catalog.Application
	window catalog.PageWindow
}

// CachedSource answers reads from an expirable LRU and forwards writes,
// dropping the affected keys.
type CachedSource struct {
	next  domain.CatalogSource
	cache *expirable.LRU[string, any]
	log   zerolog.Logger
}

var _ domain.CatalogSource = (*CachedSource)(nil)

// NewCachedSource wraps next. A ttl of zero or less disables expiry-based
// caching by returning next unchanged.
func NewCachedSource(next domain.CatalogSource, size int, ttl time.Duration, log zerolog.Logger) domain.CatalogSource {
	if ttl <= 0 {
		return next
	}

	if size <= 0 {
		size = DefaultSize
	}

	return &CachedSource{
		next:  next,
		cache: expirable.NewLRU[string, any](size, nil, ttl),
		log:   log.With().Str("component", "cache").Logger(),
	}
}

func categoryKey(id int) string {
	return categoriesKey + "/" + strconv.Itoa(id)
}

func applicationKey(id string) string {
	return applicationsKey + "/" + id
}

func listKey(params domain.ListParams) string {
	params = params.Normalized()

	values := url.Values{}
	values.Set("category", strconv.Itoa(params.CategoryID))
	values.Set("search", params.Search)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("pageSize", strconv.Itoa(params.PageSize))

	return applicationsKey + "?" + values.Encode()
}

func lookup[T any](c *CachedSource, key string) (T, bool) {
	var zero T

	value, ok := c.cache.Get(key)
	if !ok {
		c.log.Debug().Str("key", key).Msg("cache miss")

		return zero, false
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false
	}

	c.log.Debug().Str("key", key).Msg("cache hit")

	return typed, true
}

// Invalidate drops every key starting with prefix.
func (c *CachedSource) Invalidate(prefix string) {
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
}

// Purge empties the cache.
func (c *CachedSource) Purge() {
	c.cache.Purge()
}

// Len reports how many entries are cached.
func (c *CachedSource) Len() int {
	return c.cache.Len()
}

// ListCategories is cached under "categories".
func (c *CachedSource) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if categories, ok := lookup[[]catalog.Category](c, categoriesKey); ok {
		return slices.Clone(categories), nil
	}

	categories, err := c.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Add(categoriesKey, slices.Clone(categories))

	return categories, nil
}

// GetCategory is cached under "categories/<id>".
func (c *CachedSource) GetCategory(ctx context.Context, id int) (catalog.Category, error) {
	if category, ok := lookup[catalog.Category](c, categoryKey(id)); ok {
		return category, nil
	}

	category, err := c.next.GetCategory(ctx, id)
	if err != nil {
		return catalog.Category{}, err
	}

	c.cache.Add(categoryKey(id), category)

	return category, nil
}

// CreateCategory forwards and drops cached categories.
func (c *CachedSource) CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error) {
	category, err := c.next.CreateCategory(ctx, in)
	if err == nil {
		c.Invalidate(categoriesKey)
	}

	return category, err
}

// UpdateCategory forwards and drops cached categories and the applications
// embedding them.
func (c *CachedSource) UpdateCategory(ctx context.Context, id int, in catalog.CategoryInput) (catalog.Category, error) {
	category, err := c.next.UpdateCategory(ctx, id, in)
	if err == nil {
		c.Invalidate(categoriesKey)
		c.Invalidate(applicationsKey)
	}

	return category, err
}

// DeleteCategory forwards and drops cached categories and applications.
func (c *CachedSource) DeleteCategory(ctx context.Context, id int) error {
	err := c.next.DeleteCategory(ctx, id)
	if err == nil {
		c.Invalidate(categoriesKey)
		c.Invalidate(applicationsKey)
	}

	return err
}

// ListApplications is cached under "applications?<params>".
func (c *CachedSource) ListApplications(
	ctx context.Context, params domain.ListParams,
) ([]catalog.Application, catalog.PageWindow, error) {
	key := listKey(params)

	if page, ok := lookup[applicationPage](c, key); ok {
		return slices.Clone(page.apps), page.window, nil
	}

	apps, window, err := c.next.ListApplications(ctx, params)
	if err != nil {
		return nil, catalog.PageWindow{}, err
	}

	c.cache.Add(key, applicationPage{apps: slices.Clone(apps), window: window})

	return apps, window, nil
}

// GetApplication is cached under "applications/<id>".
func (c *CachedSource) GetApplication(ctx context.Context, id string) (catalog.Application, error) {
	if app, ok := lookup[catalog.Application](c, applicationKey(id)); ok {
		return app, nil
	}

	app, err := c.next.GetApplication(ctx, id)
	if err != nil {
		return catalog.Application{}, err
	}

	c.cache.Add(applicationKey(id), app)

	return app, nil
}

// CreateApplication forwards and drops cached applications.
func (c *CachedSource) CreateApplication(ctx context.Context, in catalog.ApplicationInput) (catalog.Application, error) {
	app, err := c.next.CreateApplication(ctx, in)
	if err == nil {
		c.Invalidate(applicationsKey)
	}

	return app, err
}

// UpdateApplication forwards and drops cached applications, including the
// single-record entries.
func (c *CachedSource) UpdateApplication(
	ctx context.Context, id int, in catalog.ApplicationInput,
) (catalog.Application, error) {
	app, err := c.next.UpdateApplication(ctx, id, in)
	if err == nil {
		c.Invalidate(applicationsKey)
	}

	return app, err
}

// DeleteApplication forwards and drops cached applications.
func (c *CachedSource) DeleteApplication(ctx context.Context, id int) error {
	err := c.next.DeleteApplication(ctx, id)
	if err == nil {
		c.Invalidate(applicationsKey)
	}

	return err
}
