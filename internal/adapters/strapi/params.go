// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package strapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/janderssonse/appstore/internal/domain"
)

// listQuery encodes the populate, filter and pagination parameters of an
// application listing.
func listQuery(params domain.ListParams) url.Values {
	params = params.Normalized()

	query := url.Values{}
	query.Set("populate[category]", "true")
	query.Set("populate[logo]", "true")

	if params.CategoryID != 0 {
		query.Set("filters[category][id][$eq]", strconv.Itoa(params.CategoryID))
	}

	if strings.TrimSpace(params.Search) != "" {
		query.Set("filters[$or][0][name][$containsi]", params.Search)
		query.Set("filters[$or][1][description][$containsi]", params.Search)
	}

	query.Set("pagination[page]", strconv.Itoa(params.Page))
	query.Set("pagination[pageSize]", strconv.Itoa(params.PageSize))

	return query
}

// detailQuery populates everything the detail view renders.
func detailQuery() url.Values {
	query := url.Values{}
	query.Set("populate[category]", "true")
	query.Set("populate[logo]", "true")
	query.Set("populate[screenshots]", "true")

	return query
}
