package ports

import (
	"math"

	"workorders/internal/pkg/errs"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination selects one page of a list. Pages are 1-based.
type Pagination struct {
	page  int
	limit int
}

// NewPagination validates page and limit. Zero values select the first page and the
// default limit.
func NewPagination(page, limit int) (Pagination, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page", page, 1, math.MaxInt32)
	}
	if limit < 1 || limit > MaxPageLimit {
		return Pagination{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}
	return Pagination{page: page, limit: limit}, nil
}

func (p Pagination) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

func (p Pagination) Limit() int {
	if p.limit < 1 {
		return DefaultPageLimit
	}
	return p.limit
}

// Skip is the number of rows before the page: (page-1) * limit.
func (p Pagination) Skip() int {
	return (p.Page() - 1) * p.Limit()
}

// Page is one page of results together with the totals of the filtered set.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage builds a page; TotalPages is ceil(total / limit).
func NewPage[T any](items []T, total int64, p Pagination) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page(),
		Limit:      p.Limit(),
		TotalPages: int(math.Ceil(float64(total) / float64(p.Limit()))),
	}
}
