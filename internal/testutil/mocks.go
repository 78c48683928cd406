// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil holds testify mocks of the domain ports.
package testutil

import (
	"context"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCatalogSource mocks the CatalogSource port for testing.
type MockCatalogSource struct {
	mock.Mock
}

var _ domain.CatalogSource = (*MockCatalogSource)(nil)

// ListCategories mocks listing categories.
func (m *MockCatalogSource) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).([]catalog.Category); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

// GetCategory mocks fetching one category.
func (m *MockCatalogSource) GetCategory(ctx context.Context, id int) (catalog.Category, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(catalog.Category)

	return result, args.Error(1)
}

// CreateCategory mocks category creation.
func (m *MockCatalogSource) CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(catalog.Category)

	return result, args.Error(1)
}

// UpdateCategory mocks category updates.
func (m *MockCatalogSource) UpdateCategory(ctx context.Context, id int, in catalog.CategoryInput) (catalog.Category, error) {
	args := m.Called(ctx, id, in)
	result, _ := args.Get(0).(catalog.Category)

	return result, args.Error(1)
}

// DeleteCategory mocks category removal.
func (m *MockCatalogSource) DeleteCategory(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// ListApplications mocks application listing.
func (m *MockCatalogSource) ListApplications(
	ctx context.Context, params domain.ListParams,
) ([]catalog.Application, catalog.PageWindow, error) {
	args := m.Called(ctx, params)
	apps, _ := args.Get(0).([]catalog.Application)
	window, _ := args.Get(1).(catalog.PageWindow)

	return apps, window, args.Error(2)
}

// GetApplication mocks fetching one application.
func (m *MockCatalogSource) GetApplication(ctx context.Context, id string) (catalog.Application, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(catalog.Application)

	return result, args.Error(1)
}

// CreateApplication mocks application creation.
func (m *MockCatalogSource) CreateApplication(ctx context.Context, in catalog.ApplicationInput) (catalog.Application, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(catalog.Application)

	return result, args.Error(1)
}

// UpdateApplication mocks application updates.
func (m *MockCatalogSource) UpdateApplication(
	ctx context.Context, id int, in catalog.ApplicationInput,
) (catalog.Application, error) {
	args := m.Called(ctx, id, in)
	result, _ := args.Get(0).(catalog.Application)

	return result, args.Error(1)
}

// DeleteApplication mocks application removal.
func (m *MockCatalogSource) DeleteApplication(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// MockURLOpener mocks the URLOpener port.
type MockURLOpener struct {
	mock.Mock
}

// Open mocks opening a URL.
func (m *MockURLOpener) Open(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// MockClipboard mocks the Clipboard port.
type MockClipboard struct {
	mock.Mock
}

// Copy mocks copying text.
func (m *MockClipboard) Copy(text string) error {
	return m.Called(text).Error(0)
}

// MockNetworkClient mocks the NetworkClient port.
type MockNetworkClient struct {
	mock.Mock
}

// DownloadFile mocks a download.
func (m *MockNetworkClient) DownloadFile(ctx context.Context, url, destPath string) error {
	return m.Called(ctx, url, destPath).Error(0)
}

// MockFileManager mocks the FileManager port.
type MockFileManager struct {
	mock.Mock
}

// FileExists mocks the existence check.
func (m *MockFileManager) FileExists(path string) bool {
	return m.Called(path).Bool(0)
}

// EnsureDir mocks directory creation.
func (m *MockFileManager) EnsureDir(path string) error {
	return m.Called(path).Error(0)
}
