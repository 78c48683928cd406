// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"

	"github.com/janderssonse/appstore/internal/catalog"
)

// Defaults for list requests when the caller leaves fields at zero.
const (
	DefaultListPage     = 1
	DefaultListPageSize = catalog.DefaultPageSize
)

// ListParams scopes an application listing.
type ListParams struct {
	CategoryID int
	Search     string
	Page       int
	PageSize   int
}

// Normalized fills the page defaults.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultListPage
	}

	if p.PageSize < 1 {
		p.PageSize = DefaultListPageSize
	}

	return p
}

// CatalogSource is the content service holding categories and applications.
// Implemented by the REST client and by the caching decorator.
type CatalogSource interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	GetCategory(ctx context.Context, id int) (catalog.Category, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error)
	UpdateCategory(ctx context.Context, id int, in catalog.CategoryInput) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	ListApplications(ctx context.Context, params ListParams) ([]catalog.Application, catalog.PageWindow, error)
	// GetApplication accepts a numeric id or a document id.
	GetApplication(ctx context.Context, id string) (catalog.Application, error)
	CreateApplication(ctx context.Context, in catalog.ApplicationInput) (catalog.Application, error)
	UpdateApplication(ctx context.Context, id int, in catalog.ApplicationInput) (catalog.Application, error)
	DeleteApplication(ctx context.Context, id int) error
}

// URLOpener opens a link in the desktop browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// Clipboard receives share links.
type Clipboard interface {
	Copy(text string) error
}

// NetworkClient defines the interface for network operations.
type NetworkClient interface {
	// DownloadFile downloads a file from a URL to a destination path.
	DownloadFile(ctx context.Context, url, destPath string) error
}

// FileManager is the slice of the filesystem that downloads need.
type FileManager interface {
	FileExists(path string) bool
	EnsureDir(path string) error
}
