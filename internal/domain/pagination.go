package domain

import "errors"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 1000
)

var (
	// ErrNotFound is returned by repositories when no visible row matches.
	ErrNotFound = errors.New("record not found")
	// ErrHasDependents is returned when a delete is blocked by referencing rows.
	ErrHasDependents = errors.New("record has dependent rows")
)

// PageRequest is a normalized page/limit pair. Build it with NewPageRequest.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps limit to [1, MaxPageLimit] (0 means the default)
// and page to at least 1.
func NewPageRequest(page, limit int) PageRequest {
	switch {
	case limit == 0:
		limit = DefaultPageLimit
	case limit < 1:
		limit = 1
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	if page < 1 {
		page = 1
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalData   int64 `json:"totalData"`
	Limit       int   `json:"limit"`
}

func NewPagination(p PageRequest, total int64) Pagination {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  pages,
		TotalData:   total,
		Limit:       p.Limit,
	}
}
