package utils

import "math"

const (
	// DefaultLimit is the page size used when none is requested
	DefaultLimit = 10
	// MaxLimit caps the requested page size
	MaxLimit = 100
)

// PageRef points at an adjacent page
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds pagination response metadata. Next is present only when
// a later page exists, Prev only past page one.
type Pagination struct {
	Next       *PageRef `json:"next,omitempty"`
	Prev       *PageRef `json:"prev,omitempty"`
	Total      int64    `json:"total"`
	TotalPages int      `json:"totalPages"`
}

// NormalizePage clamps page and limit to their valid ranges
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the SQL offset for a 1-based page
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// BuildPagination generates pagination metadata for a result set
func BuildPagination(total int64, page, limit int) Pagination {
	p := Pagination{
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	if int64(page*limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
