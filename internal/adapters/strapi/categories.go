// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package strapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/janderssonse/appstore/internal/catalog"
)

// ListCategories returns every category.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var resp envelope[[]wireCategory]
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(resp.Data))
	for _, w := range resp.Data {
		categories = append(categories, w.toCategory())
	}

	return categories, nil
}

// GetCategory returns the category with id.
func (c *Client) GetCategory(ctx context.Context, id int) (catalog.Category, error) {
	var resp envelope[wireCategory]
	if err := c.do(ctx, http.MethodGet, categoryPath(id), nil, nil, &resp); err != nil {
		return catalog.Category{}, err
	}

	return resp.Data.toCategory(), nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error) {
	var resp envelope[wireCategory]
	if err := c.do(ctx, http.MethodPost, "/categories", nil, mutation[catalog.CategoryInput]{Data: in}, &resp); err != nil {
		return catalog.Category{}, err
	}

	return resp.Data.toCategory(), nil
}

// UpdateCategory changes the non-empty fields of in.
func (c *Client) UpdateCategory(ctx context.Context, id int, in catalog.CategoryInput) (catalog.Category, error) {
	var resp envelope[wireCategory]
	if err := c.do(ctx, http.MethodPut, categoryPath(id), nil, mutation[catalog.CategoryInput]{Data: in}, &resp); err != nil {
		return catalog.Category{}, err
	}

	return resp.Data.toCategory(), nil
}

// DeleteCategory removes the category with id.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, categoryPath(id), nil, nil, nil)
}

func categoryPath(id int) string {
	return "/categories/" + strconv.Itoa(id)
}
