package validation

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"erpinterno/internal/shared/query"
)

// ParsePage reads page, limit, sortBy and sortOrder. Out-of-range values are
// reported, never clamped. An empty sortable list accepts any sortBy.
func ParsePage(values url.Values, sortable []string, errs FieldErrors) query.Page {
	page := query.Page{
		Number:   query.DefaultPage,
		Limit:    query.DefaultLimit,
		SortDesc: true,
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("page", "Deve ser um número inteiro")
		case n < 1:
			errs.Add("page", "Deve ser maior ou igual a 1")
		default:
			page.Number = n
		}
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("limit", "Deve ser um número inteiro")
		case n < 1:
			errs.Add("limit", "Deve ser maior ou igual a 1")
		case n > query.MaxLimit:
			errs.Add("limit", fmt.Sprintf("Deve ser menor ou igual a %d", query.MaxLimit))
		default:
			page.Limit = n
		}
	}

	if raw := strings.TrimSpace(values.Get("sortBy")); raw != "" {
		if len(sortable) > 0 && !slices.Contains(sortable, raw) {
			errs.Add("sortBy", fmt.Sprintf("Valor deve ser um de: %s", strings.Join(sortable, ", ")))
		} else {
			page.SortBy = raw
		}
	}

	switch strings.TrimSpace(values.Get("sortOrder")) {
	case "", "desc":
	case "asc":
		page.SortDesc = false
	default:
		errs.Add("sortOrder", "Valor deve ser um de: asc, desc")
	}

	return page
}
