// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package strapi

import (
	"encoding/json"
	"strings"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/tidwall/gjson"
)

type envelope[T any] struct {
	Data T `json:"data"`
	Meta struct {
		Pagination *pagination `json:"pagination"`
	} `json:"meta"`
}

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type mutation[T any] struct {
	Data T `json:"data"`
}

type media struct {
	URL string `json:"url"`
}

type wireCategory struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
}

type wireApplication struct {
	ID                 int             `json:"id"`
	DocumentID         string          `json:"documentId"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	DownloadURL        string          `json:"downloadUrl"`
	Logo               *media          `json:"logo"`
	Rating             *float64        `json:"rating"`
	Downloads          string          `json:"downloads"`
	FullDescription    string          `json:"fullDescription"`
	Screenshots        []media         `json:"screenshots"`
	Version            string          `json:"version"`
	FileSize           string          `json:"fileSize"`
	SystemRequirements string          `json:"systemRequirements"`
	LastUpdated        string          `json:"lastUpdated"`
	Features           json.RawMessage `json:"features"`
	Category           *wireCategory   `json:"category"`
}

func (w wireCategory) toCategory() catalog.Category {
	return catalog.Category{ID: w.ID, Name: w.Name, Icon: w.Icon, Color: w.Color}
}

func (w wireApplication) toApplication(mediaBase string) catalog.Application {
	app := catalog.Application{
		ID:                 w.ID,
		DocumentID:         w.DocumentID,
		Name:               w.Name,
		Description:        w.Description,
		DownloadURL:        w.DownloadURL,
		Rating:             w.Rating,
		Downloads:          w.Downloads,
		FullDescription:    w.FullDescription,
		Version:            w.Version,
		FileSize:           w.FileSize,
		SystemRequirements: w.SystemRequirements,
		LastUpdated:        w.LastUpdated,
		Features:           decodeFeatures(w.Features),
		Screenshots:        []string{},
	}

	var logo string
	if w.Logo != nil {
		logo = w.Logo.URL
	}

	app.Logo = absoluteMediaURL(mediaBase, logo)

	for _, shot := range w.Screenshots {
		app.Screenshots = append(app.Screenshots, absoluteMediaURL(mediaBase, shot.URL))
	}

	if w.Category != nil {
		category := w.Category.toCategory()
		app.Category = &category
	}

	return app
}

// absoluteMediaURL resolves a stored media path. Empty paths get the default
// logo and absolute URLs are kept.
func absoluteMediaURL(base, path string) string {
	switch {
	case path == "":
		return catalog.DefaultLogo
	case strings.HasPrefix(path, "http"):
		return path
	default:
		return base + path
	}
}

// decodeFeatures accepts a JSON array of strings or a newline separated text.
func decodeFeatures(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	value := gjson.ParseBytes(raw)

	var features []string

	switch {
	case value.IsArray():
		value.ForEach(func(_, item gjson.Result) bool {
			if text := strings.TrimSpace(item.String()); text != "" {
				features = append(features, text)
			}

			return true
		})
	case value.Type == gjson.String:
		for line := range strings.SplitSeq(value.String(), "\n") {
			if text := strings.TrimSpace(strings.TrimLeft(line, "-*• ")); text != "" {
				features = append(features, text)
			}
		}
	}

	return features
}

func (p *pagination) toWindow() catalog.PageWindow {
	return catalog.PageWindow{
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		Total:     p.Total,
	}
}
