package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/domain"
)

// parsePagination reads the common list parameters from the query string.
// The client-facing page index is one-based; it is decremented here to the
// zero-based index everything below the boundary uses. Unparseable or
// out-of-range values fall back to defaults rather than erroring.
func parsePagination(q url.Values) domain.Pagination {
	p := domain.Pagination{
		Page:  domain.DefaultPage,
		Skip:  domain.DefaultSkip,
		Limit: domain.DefaultLimit,
	}
	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}
	if raw := q.Get("skip"); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil && skip >= 0 {
			p.Skip = skip
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}

	// To zero-based for the controller layer.
	p.Page--
	p.Normalize()
	return p
}

// hasNextPage reports whether rows remain past the current zero-based page.
func hasNextPage(serverPage, limit, count int) bool {
	return count > (serverPage+1)*limit
}

// nextValues carries the resource-specific filters to reproduce on the next
// link. Empty or zero-valued entries are dropped.
type nextValues struct {
	strings map[string]string
	ids     map[string]uuid.UUID
}

// nextLink builds the path+query for the following page. The page parameter
// is the incremented client-facing (one-based) index; default-valued and
// empty filter fields are omitted.
func nextLink(r *http.Request, serverPage, skip, limit int, extra nextValues) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(serverPage+2)) // zero-based +1 for client, +1 for next

	if skip != domain.DefaultSkip {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit != domain.DefaultLimit {
		q.Set("limit", strconv.Itoa(limit))
	}
	for key, val := range extra.strings {
		if val != "" {
			q.Set(key, val)
		}
	}
	for key, id := range extra.ids {
		if id != uuid.Nil {
			q.Set(key, id.String())
		}
	}

	return r.URL.Path + "?" + q.Encode()
}
