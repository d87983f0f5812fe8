package utils

import "math"

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// Bounds returns the slice bounds [lo, hi) of the current page within
// TotalItems. Pages past the end give an empty range, however large the page.
func (p *Pagination) Bounds() (lo, hi int) {
	if p.TotalItems <= 0 || p.PageSize <= 0 || p.CurrentPage <= 0 {
		return 0, 0
	}
	if p.CurrentPage-1 > p.TotalItems/p.PageSize {
		return p.TotalItems, p.TotalItems
	}
	lo = (p.CurrentPage - 1) * p.PageSize
	if lo > p.TotalItems {
		lo = p.TotalItems
	}
	if p.PageSize > p.TotalItems-lo {
		return lo, p.TotalItems
	}
	return lo, lo + p.PageSize
}
