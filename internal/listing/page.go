package listing

// Meta describes the page position within the full filtered result set.
type Meta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
	ItemCount   int  `json:"itemCount"`
}

// Page is the {data, meta} envelope returned by all list endpoints.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage wraps one page of items with metadata derived from the request
// and the filtered total.
func NewPage[T any](items []T, total int, p Params) Page[T] {
	page := p.page()
	size := p.pageSize()
	totalPages := (total + size - 1) / size
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data: items,
		Meta: Meta{
			Page:        page,
			PageSize:    size,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
			ItemCount:   len(items),
		},
	}
}
