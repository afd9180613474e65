package pagination

// DefaultPageSize is used when a caller supplies no page size.
const DefaultPageSize = 12

// Page returns the 1-based page of items. A page before the first or past
// the last yields an empty slice; callers clamp the current page themselves.
func Page[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages returns ceil(totalItems / pageSize); zero items means zero pages.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize < 1 {
		return 0
	}

	return (totalItems + pageSize - 1) / pageSize
}

// Clamp forces page into [1, totalPages] for current-page state. With zero
// pages it returns 1 so an empty result still renders as page one.
func Clamp(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
