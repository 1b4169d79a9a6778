package kernel

// PaginationOptions carries page-based pagination parameters
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize applies defaults for zero values
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	return p
}

// Offset returns the row offset for the current page
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Page describes the position of a result page
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
}

// Paginated wraps a page of items with pagination metadata
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
}

// NewPaginated builds a Paginated result
func NewPaginated[T any](items []T, page, pageSize, total int) Paginated[T] {
	return Paginated[T]{
		Items: items,
		Page: Page{
			Number: page,
			Size:   pageSize,
			Total:  total,
		},
	}
}

// TotalPages returns the number of pages available
func (p Paginated[T]) TotalPages() int {
	if p.Page.Size <= 0 {
		return 0
	}
	return (p.Page.Total + p.Page.Size - 1) / p.Page.Size
}

// HasNext reports whether a further page exists
func (p Paginated[T]) HasNext() bool {
	return p.Page.Number < p.TotalPages()
}
