package shared

// Paginated represents a page of results. Pages are zero-based.
type Paginated[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Content:       items,
		Page:          page,
		Size:          pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Offset returns the number of rows to skip for a zero-based page
func Offset(page, pageSize int) int {
	return page * pageSize
}
