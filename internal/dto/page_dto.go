package dto

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest is a zero-based page window with an optional sort override.
type PageRequest struct {
	Page int
	Size int
	Sort string
	Desc bool
}

func (r PageRequest) Normalized() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = defaultPageSize
	}
	if r.Size > maxPageSize {
		r.Size = maxPageSize
	}
	return r
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPageResponse[T any](content []T, req PageRequest, total int64) *PageResponse[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &PageResponse[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
