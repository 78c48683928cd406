// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import "fmt"

// PageWindow describes one paginated view of a result set.
type PageWindow struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// NewPageWindow computes the window for total items. The page is clamped
// into [1, max(1, pageCount)].
func NewPageWindow(page, pageSize, total int) (PageWindow, error) {
	if pageSize < 1 {
		return PageWindow{}, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	pageCount := 0
	if total > 0 {
		pageCount = (total-1)/pageSize + 1
	}

	return PageWindow{
		Page:      ClampPage(page, pageCount),
		PageSize:  pageSize,
		PageCount: pageCount,
		Total:     total,
	}, nil
}

// ClampPage keeps page inside [1, max(1, pageCount)].
func ClampPage(page, pageCount int) int {
	upper := max(1, pageCount)

	return min(max(page, 1), upper)
}

// HasPrevious reports whether a page precedes the current one.
func (w PageWindow) HasPrevious() bool {
	return w.Page > 1
}

// HasNext reports whether a page follows the current one.
func (w PageWindow) HasNext() bool {
	return w.Page < w.PageCount
}

// Start is the 1-based position of the first item on the page, 0 when empty.
func (w PageWindow) Start() int {
	if w.Total == 0 {
		return 0
	}

	return w.offset() + 1
}

// End is the 1-based position of the last item on the page.
func (w PageWindow) End() int {
	offset := w.offset()
	if offset >= w.Total {
		return w.Total
	}

	return offset + min(w.PageSize, w.Total-offset)
}

// offset counts the items before the page. It stays below Total for a
// clamped page, so it cannot overflow.
func (w PageWindow) offset() int {
	if w.PageCount == 0 {
		return 0
	}

	return (w.Page - 1) * w.PageSize
}

// Paginate returns the entries on the requested page and the window
// describing it. Out-of-range pages are clamped, so the slice is only empty
// when entries is. The returned slice never aliases entries.
func Paginate[T any](entries []T, page, pageSize int) ([]T, PageWindow, error) {
	window, err := NewPageWindow(page, pageSize, len(entries))
	if err != nil {
		return nil, PageWindow{}, err
	}

	start := window.offset()
	if start >= window.Total {
		return []T{}, window, nil
	}

	end := window.End()
	slice := make([]T, end-start)
	copy(slice, entries[start:end])

	return slice, window, nil
}
