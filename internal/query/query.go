// Package query implements the list-view engine shared by every dashboard
// page: free-text search, exact field filters and page slicing.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned for a non-positive page or page size.
var ErrInvalidArgument = errors.New("invalid argument")

// Schema declares, for one record type, which string fields free-text search
// looks at and which named fields can be filtered on.
type Schema[T any] struct {
	Searchable []func(T) string
	Filters    map[string]func(T) string
}

// Request is one list-view query.
// An empty Search or an empty filter value places no constraint.
type Request struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Page is the slice of matches to display plus its pagination metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// Match returns the records passing the search and every active filter, in
// their original order. Filter names the schema does not know are ignored.
func (s Schema[T]) Match(records []T, search string, filters map[string]string) []T {
	q := strings.ToLower(search)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q != "" && !s.matchesSearch(r, q) {
			continue
		}
		if !s.matchesFilters(r, filters) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s Schema[T]) matchesSearch(r T, q string) bool {
	for _, field := range s.Searchable {
		if strings.Contains(strings.ToLower(field(r)), q) {
			return true
		}
	}
	return false
}

func (s Schema[T]) matchesFilters(r T, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		get, ok := s.Filters[name]
		if !ok {
			continue
		}
		if get(r) != want {
			return false
		}
	}
	return true
}

// Run matches and paginates in one call.
func (s Schema[T]) Run(records []T, req Request) (Page[T], error) {
	if err := validate(req.Page, req.PageSize); err != nil {
		return Page[T]{}, err
	}
	return Paginate(s.Match(records, req.Search, req.Filters), req.Page, req.PageSize)
}

// Paginate slices an already-matched collection. An out-of-range page yields
// an empty slice; the page is never clamped here.
func Paginate[T any](matched []T, page, pageSize int) (Page[T], error) {
	if err := validate(page, pageSize); err != nil {
		return Page[T]{}, err
	}
	n := len(matched)
	start := (page - 1) * pageSize
	end := min(start+pageSize, n)
	items := []T{}
	if start < n {
		items = matched[start:end]
	}
	return Page[T]{
		Items:      items,
		Total:      n,
		TotalPages: TotalPages(n, pageSize),
		Page:       page,
		PageSize:   pageSize,
		StartIndex: start,
		EndIndex:   max(end, start),
	}, nil
}

// TotalPages is ceil(n/pageSize) with a minimum of one page.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return max(1, (n+pageSize-1)/pageSize)
}

// Clamp brings page back into [1, totalPages], for callers whose filters just narrowed the set.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return max(1, totalPages)
	}
	return page
}

func validate(page, pageSize int) error {
	if pageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, pageSize)
	}
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	return nil
}
