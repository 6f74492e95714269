package feed

const DefaultPageSize = 20

type Page struct {
	Items    []Item `json:"items"`
	Page     int    `json:"page"`
	HasNext  bool   `json:"has_next"`
	NextPage *int   `json:"next_page"`
	Total    int    `json:"total"`
}

// Paginate slices a 1-based page out of items. Pages past the end are empty.
func Paginate(items []Item, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	p := Page{
		Items:   append([]Item{}, items[start:end]...),
		Page:    page,
		HasNext: end < total,
		Total:   total,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	return p
}
