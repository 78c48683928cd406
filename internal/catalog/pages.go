// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import "strconv"

const (
	// maxPlainPages is the largest page count shown without collapsing.
	maxPlainPages = 7
	// pageRadius is how many neighbours are shown each side of the current page.
	pageRadius = 2
)

// EllipsisText is how an elided range is rendered.
const EllipsisText = "..."

// PageMarker is one element of the page-number control: either a page or an
// ellipsis standing in for a hidden range.
type PageMarker struct {
	page     int
	ellipsis bool
}

// Ellipsis is the marker for an elided range of pages.
var Ellipsis = PageMarker{ellipsis: true} //nolint:gochecknoglobals

// PageNumber returns a marker for page n.
func PageNumber(n int) PageMarker {
	return PageMarker{page: n}
}

// IsEllipsis reports whether the marker hides a range.
func (m PageMarker) IsEllipsis() bool {
	return m.ellipsis
}

// Page returns the page number, or 0 for an ellipsis.
func (m PageMarker) Page() int {
	return m.page
}

func (m PageMarker) String() string {
	if m.IsEllipsis() {
		return EllipsisText
	}

	return strconv.Itoa(m.page)
}

// MarshalJSON encodes a page as a number and the ellipsis as "...".
func (m PageMarker) MarshalJSON() ([]byte, error) {
	if m.IsEllipsis() {
		return []byte(strconv.Quote(EllipsisText)), nil
	}

	return []byte(strconv.Itoa(m.page)), nil
}

// VisiblePages lists the page controls to show for page out of pageCount.
// Up to seven pages are listed in full. Longer ranges keep the first and last
// page plus two neighbours each side of the current page, with an ellipsis
// wherever pages are skipped. Nothing is returned for a single page.
func VisiblePages(page, pageCount int) []PageMarker {
	if pageCount <= 1 {
		return nil
	}

	if pageCount <= maxPlainPages {
		markers := make([]PageMarker, 0, pageCount)
		for n := 1; n <= pageCount; n++ {
			markers = append(markers, PageNumber(n))
		}

		return markers
	}

	page = ClampPage(page, pageCount)

	// Compared by subtraction so page numbers near MaxInt cannot overflow.
	lastInner := pageCount - 1
	leftGap := page-pageRadius > 2
	rightGap := page < lastInner-pageRadius

	low := 2
	if leftGap {
		low = page - pageRadius
	}

	high := lastInner
	if rightGap {
		high = page + pageRadius
	}

	markers := make([]PageMarker, 0, high-low+5)
	markers = append(markers, PageNumber(1))

	if leftGap {
		markers = append(markers, Ellipsis)
	}

	for n := low; n <= high; n++ {
		markers = append(markers, PageNumber(n))
	}

	if rightGap {
		markers = append(markers, Ellipsis)
	}

	return append(markers, PageNumber(pageCount))
}
