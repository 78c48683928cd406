// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package strapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
)

// ListApplications returns one page of applications along with the server's
// pagination metadata.
func (c *Client) ListApplications(
	ctx context.Context, params domain.ListParams,
) ([]catalog.Application, catalog.PageWindow, error) {
	params = params.Normalized()

	var resp envelope[[]wireApplication]
	if err := c.do(ctx, http.MethodGet, "/applications", listQuery(params), nil, &resp); err != nil {
		return nil, catalog.PageWindow{}, err
	}

	apps := make([]catalog.Application, 0, len(resp.Data))
	for _, w := range resp.Data {
		apps = append(apps, w.toApplication(c.mediaBase))
	}

	if resp.Meta.Pagination != nil {
		return apps, resp.Meta.Pagination.toWindow(), nil
	}

	window, err := catalog.NewPageWindow(params.Page, params.PageSize, len(apps))
	if err != nil {
		return nil, catalog.PageWindow{}, fmt.Errorf("failed to derive pagination: %w", err)
	}

	return apps, window, nil
}

// GetApplication returns the application with the numeric or document id.
func (c *Client) GetApplication(ctx context.Context, id string) (catalog.Application, error) {
	var resp envelope[wireApplication]
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), detailQuery(), nil, &resp); err != nil {
		return catalog.Application{}, err
	}

	return resp.Data.toApplication(c.mediaBase), nil
}

// CreateApplication stores a new application.
func (c *Client) CreateApplication(ctx context.Context, in catalog.ApplicationInput) (catalog.Application, error) {
	var resp envelope[wireApplication]

	err := c.do(ctx, http.MethodPost, "/applications", nil, mutation[catalog.ApplicationInput]{Data: in}, &resp)
	if err != nil {
		return catalog.Application{}, err
	}

	return resp.Data.toApplication(c.mediaBase), nil
}

// UpdateApplication changes the non-empty fields of in.
func (c *Client) UpdateApplication(ctx context.Context, id int, in catalog.ApplicationInput) (catalog.Application, error) {
	var resp envelope[wireApplication]

	err := c.do(ctx, http.MethodPut, applicationPath(id), nil, mutation[catalog.ApplicationInput]{Data: in}, &resp)
	if err != nil {
		return catalog.Application{}, err
	}

	return resp.Data.toApplication(c.mediaBase), nil
}

// DeleteApplication removes the application with id.
func (c *Client) DeleteApplication(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, applicationPath(id), nil, nil, nil)
}

func applicationPath(id int) string {
	return "/applications/" + strconv.Itoa(id)
}
