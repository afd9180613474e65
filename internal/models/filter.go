package models

// DateRange names a relative date window starting at local midnight today.
type DateRange string

const (
	RangeAnytime     DateRange = "anytime"
	RangeNextWeek    DateRange = "next_week"
	RangeNextMonth   DateRange = "next_month"
	RangeNext3Months DateRange = "next_3_months"
	RangeNext6Months DateRange = "next_6_months"
)

// ValidDateRange reports whether r is one of the named ranges.
func ValidDateRange(r DateRange) bool {
	switch r {
	case RangeAnytime, RangeNextWeek, RangeNextMonth, RangeNext3Months, RangeNext6Months:
		return true
	}
	return false
}

// FilterState fully determines the visible subset of the event collection.
// The zero value means "no filtering beyond past-event suppression".
type FilterState struct {
	Query      string
	Categories []string

	// SelectedDates is the calendar-view mode: when non-empty it takes
	// precedence over DateRange entirely.
	SelectedDates []string
	DateRange     DateRange

	// Proximity filtering is active only when Center is set.
	Center                 *Coordinates
	MinDistance            float64
	MaxDistance            float64 // 0 means unbounded
	IncludeWithoutLocation bool
}

// PaginationMeta is derived from the filtered set, never persisted.
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
