package types

// Filter - параметры поиска и пагинации из query-строки.
type Filter struct {
	Search         string `json:"search,omitempty"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
	Page           int    `json:"page"`
	WithPagination bool   `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/equipment?search=pump&limit=10&page=2&withPagination=true
