package pagination

import "math"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// Defaults fills in default values when page or page_size are not provided.
func (p *PageRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Offset returns the index of the first item on the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// HasPrev reports whether a page exists before this one.
func (p PageResponse[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a page exists after this one.
func (p PageResponse[T]) HasNext() bool { return p.Page < p.TotalPages }

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Slice cuts the requested page out of an already-loaded result set.
// A page past the end yields an empty Data slice with correct totals.
func Slice[T any](items []T, req PageRequest) PageResponse[T] {
	req.Defaults()

	start := req.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return NewPageResponse(items[start:end], req.Page, req.PageSize, int64(len(items)))
}
