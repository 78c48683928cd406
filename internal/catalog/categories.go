// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

// DefaultCategories stand in when the catalog has no categories yet. Their
// negative IDs never match a stored category.
var DefaultCategories = []Category{ //nolint:gochecknoglobals
	{ID: -1, Name: "games", Icon: "Gamepad2", Color: "bg-purple-500"},
	{ID: -2, Name: "utilities", Icon: "Settings", Color: "bg-blue-500"},
	{ID: -3, Name: "social", Icon: "MessageCircle", Color: "bg-green-500"},
	{ID: -4, Name: "education", Icon: "BookOpen", Color: "bg-orange-500"},
	{ID: -5, Name: "business", Icon: "Briefcase", Color: "bg-gray-500"},
	{ID: -6, Name: "photo", Icon: "Camera", Color: "bg-pink-500"},
}

// Placeholder reports whether c is one of DefaultCategories rather than a
// stored category.
func (c Category) Placeholder() bool {
	return c.ID < 0
}

// CategoriesOrDefault returns categories, or a copy of DefaultCategories when
// there are none.
func CategoriesOrDefault(categories []Category) []Category {
	if len(categories) > 0 {
		return categories
	}

	return append([]Category(nil), DefaultCategories...)
}

// FindCategory returns the category with id.
func FindCategory(categories []Category, id int) (Category, bool) {
	for _, category := range categories {
		if category.ID == id {
			return category, true
		}
	}

	return Category{}, false
}
