package shared

// PageMeta mirrors the "meta" block of a paginated list response.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Paginated is one page of an ordered list.
type Paginated[T any] struct {
	Items []T      `json:"data"`
	Meta  PageMeta `json:"meta"`
}

// Normalize keeps CurrentPage inside [1, LastPage] whenever LastPage >= 1.
func (m PageMeta) Normalize() PageMeta {
	if m.LastPage < 1 {
		if m.CurrentPage < 1 {
			m.CurrentPage = 1
		}
		return m
	}
	if m.CurrentPage < 1 {
		m.CurrentPage = 1
	}
	if m.CurrentPage > m.LastPage {
		m.CurrentPage = m.LastPage
	}
	return m
}

// SinglePage wraps a complete, unpaginated list.
func SinglePage[T any](items []T) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items: items,
		Meta: PageMeta{
			CurrentPage: 1,
			LastPage:    1,
			PerPage:     len(items),
			Total:       len(items),
		},
	}
}

// Pages lists the page numbers 1..LastPage for pager rendering.
func (m PageMeta) Pages() []int {
	last := m.LastPage
	if last < 1 {
		last = 1
	}
	out := make([]int, last)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
