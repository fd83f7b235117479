package service

// общий контракт пагинации для всех списочных операций

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// normalizePage приводит номер страницы и её размер к допустимым значениям.
// Выход за границы молча заменяется умолчанием, а не отклоняется.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// newPage собирает страницу: totalPages = ceil(totalCount/pageSize), 0 при
// пустом результате. Страница за пределами totalPages - это пустой items,
// счётчики при этом отражают весь отфильтрованный набор.
func newPage[T any](items []T, totalCount, page, pageSize int) *Page[T] {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
