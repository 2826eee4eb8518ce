package models

// PageResponse is the common paginated list envelope
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPageResponse builds a page envelope from a slice and the total row count
func NewPageResponse[T any](content []T, page, size int, total int64) *PageResponse[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &PageResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// StatsResponse is returned by GET /api/stats
type StatsResponse struct {
	ArticleCount  int64 `json:"articleCount"`
	CategoryCount int64 `json:"categoryCount"`
	ThreadCount   int64 `json:"threadCount"`
	UserCount     int64 `json:"userCount"`
	NewsCount     int64 `json:"newsCount"`
}
