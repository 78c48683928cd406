// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import "strings"

// Searchable is anything the filter engine can match against.
type Searchable interface {
	SearchName() string
	SearchDescription() string
}

// Filter returns the entries whose name or description contains query,
// ignoring case. A blank query returns entries as-is. Order is preserved and
// entries are never modified.
func Filter[T Searchable](entries []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return entries
	}

	needle := strings.ToLower(query)
	matched := make([]T, 0, len(entries))

	for _, entry := range entries {
		if Matches(entry, needle) {
			matched = append(matched, entry)
		}
	}

	return matched
}

// Matches reports whether entry contains the already lowercased needle.
func Matches(entry Searchable, needle string) bool {
	return strings.Contains(strings.ToLower(entry.SearchName()), needle) ||
		strings.Contains(strings.ToLower(entry.SearchDescription()), needle)
}
