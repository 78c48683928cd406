// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import "slices"

// DefaultPageSize is the page size a fresh storefront starts with.
const DefaultPageSize = 6

// PageSizes are the page sizes offered by the page-size selector.
var PageSizes = []int{6, 12, 24} //nolint:gochecknoglobals

// AllCategories selects every category.
const AllCategories = 0

// Query is the user-controlled state of the storefront listing.
type Query struct {
	Search     string `json:"search,omitempty"`
	CategoryID int    `json:"categoryId,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

// NewQuery returns the initial storefront query.
func NewQuery() Query {
	return Query{Page: 1, PageSize: DefaultPageSize}
}

// WithSearch changes the search text and returns to the first page.
func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1

	return q
}

// WithCategory changes the category and returns to the first page.
func (q Query) WithCategory(categoryID int) Query {
	q.CategoryID = categoryID
	q.Page = 1

	return q
}

// WithPageSize changes the page size and returns to the first page.
func (q Query) WithPageSize(size int) Query {
	q.PageSize = size
	q.Page = 1

	return q
}

// WithPage moves to the given page. Clamping happens when the view is built.
func (q Query) WithPage(page int) Query {
	q.Page = page

	return q
}

// NextPageSize cycles to the following entry of PageSizes.
func (q Query) NextPageSize() Query {
	idx := slices.Index(PageSizes, q.PageSize)

	return q.WithPageSize(PageSizes[(idx+1)%len(PageSizes)])
}

// Result is everything the render layer needs for one listing.
type Result struct {
	Items   []Application `json:"items"`
	Window  PageWindow    `json:"pagination"`
	Pages   []PageMarker  `json:"pages,omitempty"`
	Matched int           `json:"matched"`
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return r.Matched == 0
}

// View filters entries by the query's search text and slices out the
// requested page. Category scoping is expected to have been applied by the
// catalog source.
func View(entries []Application, q Query) (Result, error) {
	filtered := Filter(entries, q.Search)

	items, window, err := Paginate(filtered, q.Page, q.PageSize)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Items:   items,
		Window:  window,
		Pages:   VisiblePages(window.Page, window.PageCount),
		Matched: len(filtered),
	}, nil
}

// NextPage moves forward unless already on the last page of result.
func (q Query) NextPage(result Result) Query {
	if !result.Window.HasNext() {
		return q
	}

	return q.WithPage(result.Window.Page + 1)
}

// PrevPage moves back unless already on the first page.
func (q Query) PrevPage(result Result) Query {
	if !result.Window.HasPrevious() {
		return q
	}

	return q.WithPage(result.Window.Page - 1)
}
