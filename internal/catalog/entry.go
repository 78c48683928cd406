// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog holds the catalog records and the pure computations that
// drive the storefront view: filtering, pagination and the page-number window.
package catalog

import (
	"strconv"
	"strings"
)

// DefaultLogo is used when an application has no uploaded logo.
const DefaultLogo = "/default-app-logo.svg"

// DefaultColor is the category color used when none is chosen.
const DefaultColor = "bg-blue-500"

// Category groups applications in the storefront.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Application is one catalog entry.
type Application struct {
	ID                 int       `json:"id"`
	DocumentID         string    `json:"documentId,omitempty"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	DownloadURL        string    `json:"downloadUrl"`
	Logo               string    `json:"logo,omitempty"`
	Rating             *float64  `json:"rating,omitempty"`
	Downloads          string    `json:"downloads,omitempty"`
	FullDescription    string    `json:"fullDescription,omitempty"`
	Screenshots        []string  `json:"screenshots,omitempty"`
	Version            string    `json:"version,omitempty"`
	FileSize           string    `json:"fileSize,omitempty"`
	SystemRequirements string    `json:"systemRequirements,omitempty"`
	LastUpdated        string    `json:"lastUpdated,omitempty"`
	Features           []string  `json:"features,omitempty"`
	Category           *Category `json:"category,omitempty"`
}

// SearchName implements Searchable.
func (a Application) SearchName() string {
	return a.Name
}

// SearchDescription implements Searchable.
func (a Application) SearchDescription() string {
	return a.Description
}

// CategoryID returns the id of the owning category, or 0 when uncategorized.
func (a Application) CategoryID() int {
	if a.Category == nil {
		return 0
	}

	return a.Category.ID
}

// CategoryName returns the owning category name, or "" when uncategorized.
func (a Application) CategoryName() string {
	if a.Category == nil {
		return ""
	}

	return a.Category.Name
}

// RatingText renders the rating, or "N/A" when unset.
func (a Application) RatingText() string {
	if a.Rating == nil || *a.Rating == 0 {
		return "N/A"
	}

	return strconv.FormatFloat(*a.Rating, 'f', -1, 64)
}

// DownloadsText renders the download count, or "N/A" when unset.
func (a Application) DownloadsText() string {
	if a.Downloads == "" {
		return "N/A"
	}

	return a.Downloads
}

// CategoryInput is the payload for creating or updating a category.
// Empty fields are omitted from updates.
type CategoryInput struct {
	Name  string `json:"name,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Validate checks the fields required to create a category.
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &FieldError{Field: "name"}
	}

	return nil
}

// ApplicationInput is the payload for creating or updating an application.
type ApplicationInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	DownloadURL string   `json:"downloadUrl,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Downloads   string   `json:"downloads,omitempty"`
	Category    *int     `json:"category,omitempty"`
}

// Validate checks the fields required to create an application.
func (in ApplicationInput) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"description", in.Description},
		{"downloadUrl", in.DownloadURL},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &FieldError{Field: r.field}
		}
	}

	return nil
}

// ParseRating coerces free text into a rating. Anything unparsable becomes 0.
func ParseRating(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}

	return value
}

// ParseCategoryID turns a form value into a category reference.
// Empty or non-numeric input means no category.
func ParseCategoryID(text string) *int {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || id <= 0 {
		return nil
	}

	return &id
}
