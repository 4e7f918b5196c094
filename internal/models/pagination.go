package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ListParams carries optional paging. A zero Page means every row is returned.
type ListParams struct {
	Page     int
	PageSize int
}

// Paginated reports whether the caller asked for a single page.
func (p ListParams) Paginated() bool {
	return p.Page > 0
}

// Normalize clamps page size to a sane window.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		return ListParams{}
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the row offset for the requested page.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
