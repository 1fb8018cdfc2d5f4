package query

import (
	"strings"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

const (
	// DefaultPageSize applies when the caller supplies no page size.
	DefaultPageSize = 20
	// MaxPageSize bounds page sizes regardless of caller input.
	MaxPageSize = 100
)

// SortSpec is a resolved, allow-listed sort column and direction.
type SortSpec struct {
	Column    string
	Direction string
}

// PageSpec is a resolved, clamped page request.
type PageSpec struct {
	Page int
	Size int
}

// Offset returns the row offset for the page.
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Size
}

// ResolveSort validates a requested sort against the collection's allow-list.
// An absent sortBy falls back to created_at descending; an unknown sortBy is
// rejected so callers see the failure instead of silently getting a default.
// Directions other than asc/desc fall back to descending.
func ResolveSort(c *Collection, sortBy, direction string) (SortSpec, error) {
	column := c.CreatedAt
	if sortBy != "" {
		col, ok := c.Sortable[sortBy]
		if !ok {
			return SortSpec{}, appErrors.Validationf("sort_by", "unsupported sort field %q", sortBy)
		}
		column = col
	}

	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}

	return SortSpec{Column: column, Direction: dir}, nil
}

// ResolvePage clamps page and size into valid bounds. Oversized requests are
// clamped rather than rejected to keep pagination permissive but bounded.
func ResolvePage(page, size, defaultSize, maxSize int) PageSpec {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return PageSpec{Page: page, Size: size}
}
