package model

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps Offset within int32 for any accepted per-page value.
	MaxPage = math.MaxInt32 / MaxPerPage
)

// Pagination is a normalized page request.
type Pagination struct {
	Page    int
	PerPage int
}

// NewPagination clamps a raw page request. Page below 1 becomes 1 and page
// above MaxPage becomes MaxPage. Per-page outside [1, MaxPerPage] falls back
// to DefaultPerPage.
func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is a bounded slice of a list query plus total-count metadata.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// NewPage builds a Page from a slice and the total count.
func NewPage[T any](items []T, total int, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   (total + p.PerPage - 1) / p.PerPage,
	}
}
