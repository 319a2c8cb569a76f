package listutil

import (
	"net/url"
	"slices"

	"octofit/internal/domain/collection"
)

// SortParams carries sorting parameters parsed from a request.
type SortParams struct {
	Sort string // column name; empty when absent or not allowed
	Dir  string // "asc" or "desc"
}

// ParseSortParams extracts sort and dir from URL query values.
// PRE: none
// POST: returns SortParams; Dir is always "asc" or "desc"
func ParseSortParams(q url.Values, allowedColumns []string) SortParams {
	sort := q.Get("sort")
	dir := q.Get("dir")

	if !slices.Contains(allowedColumns, sort) {
		sort = ""
	}
	if dir != string(collection.Ascending) && dir != string(collection.Descending) {
		dir = string(collection.Ascending)
	}
	return SortParams{Sort: sort, Dir: dir}
}

// Present reports whether a usable sort column was supplied.
func (p SortParams) Present() bool {
	return p.Sort != ""
}

// State converts the params to a view sort state.
// PRE: none
// POST: returns the zero SortState when no column was supplied
func (p SortParams) State() collection.SortState {
	if !p.Present() {
		return collection.SortState{}
	}
	return collection.SortState{Column: p.Sort, Dir: collection.Direction(p.Dir)}
}

// SortQuery encodes a sort state as a query string for bookmarkable links.
// PRE: none
// POST: returns "" for an inactive state
func SortQuery(s collection.SortState) string {
	if !s.Active() {
		return ""
	}
	dir := s.Dir
	if dir != collection.Descending {
		dir = collection.Ascending
	}
	return url.Values{"sort": {s.Column}, "dir": {string(dir)}}.Encode()
}

// PageInfo carries pagination metadata for rendering a window of rows.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total rows
	TotalPages int // ceil(Total / PerPage)
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first row on the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page.
// PRE: PageInfo is valid
// POST: Returns 0 if Total is 0, otherwise Offset+1
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
// PRE: PageInfo is valid
// POST: Returns min(Offset+PerPage, Total)
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// ShowPagination returns true if there is more than one page.
// PRE: PageInfo is valid
// POST: Returns true if Total > PerPage
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// Window returns the slice of items on the current page.
// PRE: len(items) == p.Total
// POST: Returns items[StartRow-1:EndRow]; empty when Total is 0
func Window[T any](items []T, p PageInfo) []T {
	start := min(p.Offset(), len(items))
	end := min(p.EndRow(), len(items))
	return items[start:end]
}
