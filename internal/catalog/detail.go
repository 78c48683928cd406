// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import "time"

// RelatedFetchSize is how many same-category entries are requested for the
// "similar apps" panel, and RelatedShown how many of them are displayed.
const (
	RelatedFetchSize = 6
	RelatedShown     = 3
)

// Related returns up to limit entries that are not self, in order.
func Related(entries []Application, self Application, limit int) []Application {
	if limit <= 0 {
		return nil
	}

	related := make([]Application, 0, min(limit, len(entries)))

	for _, entry := range entries {
		if len(related) == limit {
			break
		}

		if entry.ID == self.ID {
			continue
		}

		related = append(related, entry)
	}

	return related
}

// Gallery steps through an application's screenshots, wrapping at both ends.
type Gallery struct {
	Images []string
	Index  int
}

// NewGallery starts a gallery at the first image.
func NewGallery(images []string) Gallery {
	return Gallery{Images: images}
}

// Len is the number of images.
func (g Gallery) Len() int {
	return len(g.Images)
}

// Current returns the selected image, or "" for an empty gallery.
func (g Gallery) Current() string {
	if len(g.Images) == 0 {
		return ""
	}

	return g.Images[g.Index]
}

// Position is the 1-based index of the current image.
func (g Gallery) Position() int {
	if len(g.Images) == 0 {
		return 0
	}

	return g.Index + 1
}

// Next advances to the following image, wrapping to the first.
func (g Gallery) Next() Gallery {
	if len(g.Images) > 0 {
		g.Index = (g.Index + 1) % len(g.Images)
	}

	return g
}

// Prev steps back to the previous image, wrapping to the last.
func (g Gallery) Prev() Gallery {
	if len(g.Images) > 0 {
		g.Index = (g.Index - 1 + len(g.Images)) % len(g.Images)
	}

	return g
}

// Select jumps to image i when it exists.
func (g Gallery) Select(i int) Gallery {
	if i >= 0 && i < len(g.Images) {
		g.Index = i
	}

	return g
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"} //nolint:gochecknoglobals

// FormatDate renders an API date for display, falling back to notSpecified
// when value is empty or unreadable.
func FormatDate(value, notSpecified string) string {
	if value == "" {
		return notSpecified
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2 January 2006")
		}
	}

	return notSpecified
}
