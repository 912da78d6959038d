package entity

// Page is one page of an ordered result set. Numbers are 1-based.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	Size        int   `json:"size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// PageBounds resolves a requested page number against total items.
// Numbers below 1 become 1 and numbers past the end become the last page;
// an empty result still has one (empty) page.
func PageBounds(requested, size int, total int64) (number, offset, totalPages int) {
	if size <= 0 {
		size = 1
	}
	totalPages = int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number = requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return number, (number - 1) * size, totalPages
}

func NewPage[T any](items []T, number, size int, total int64, totalPages int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
