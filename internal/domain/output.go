// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"time"

	"github.com/janderssonse/appstore/internal/catalog"
)

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data any) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Progress outputs progress information for long-running operations
	Progress(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// BrowseResult is one page of the storefront listing.
type BrowseResult struct {
	Items      []catalog.Application `json:"items"`
	Pagination catalog.PageWindow    `json:"pagination"`
	Pages      []catalog.PageMarker  `json:"pages"`
	Matched    int                   `json:"matched"`
	Search     string                `json:"search,omitempty"`
	CategoryID int                   `json:"category_id,omitempty"`
	Summary    string                `json:"summary"`
	Timestamp  time.Time             `json:"timestamp"`
}

// DetailResult is an application together with its similar apps.
type DetailResult struct {
	Application catalog.Application   `json:"application"`
	Related     []catalog.Application `json:"related"`
	Timestamp   time.Time             `json:"timestamp"`
}

// CategoriesResult lists the storefront categories.
type CategoriesResult struct {
	Categories []catalog.Category `json:"categories"`
	Defaults   bool               `json:"defaults,omitempty"`
	Total      int                `json:"total"`
	Timestamp  time.Time          `json:"timestamp"`
}

// DownloadResult describes a saved download.
type DownloadResult struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	Path      string        `json:"path"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// MutationResult describes an admin write.
type MutationResult struct {
	Action    string    `json:"action"` // "created", "updated", "deleted"
	Kind      string    `json:"kind"`   // "category", "application"
	ID        int       `json:"id"`
	Name      string    `json:"name,omitempty"`
	Notice    string    `json:"notice"`
	Timestamp time.Time `json:"timestamp"`
}
