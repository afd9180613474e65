// Package filter implements the event filtering engine: a pure function
// mapping the full event collection and a filter state to the visible subset.
package filter

import (
	"strings"
	"time"

	"portugalRunning/internal/geo"
	"portugalRunning/internal/models"
)

// Filter returns the events matching fs, preserving input order. It never
// mutates events. now anchors the relative date ranges; the window starts at
// local midnight of now. Deterministic: same inputs, same output.
func Filter(events []models.Event, fs models.FilterState, now time.Time) []models.Event {
	today := midnight(now)
	end := rangeEnd(today, fs.DateRange)

	selected := make(map[string]struct{}, len(fs.SelectedDates))
	for _, d := range fs.SelectedDates {
		selected[d] = struct{}{}
	}

	query := strings.ToLower(strings.TrimSpace(fs.Query))

	var matched []models.Event
	for _, e := range events {
		if matches(e, fs, selected, query, today, end) {
			matched = append(matched, e)
		}
	}

	return matched
}

// matches evaluates the predicates in order, short-circuiting on the first
// failure. The order does not affect the result, only the work done.
func matches(e models.Event, fs models.FilterState, selected map[string]struct{}, query string, today, end time.Time) bool {
	// Calendar mode takes precedence over the range filter entirely.
	if len(selected) > 0 {
		if e.Date == "" {
			return false
		}
		if _, ok := selected[e.Date]; !ok {
			return false
		}
	} else if !inDateRange(e.Date, today, end) {
		return false
	}

	if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
		return false
	}

	if len(fs.Categories) > 0 && !hasAnyCategory(e, fs.Categories) {
		return false
	}

	if fs.Center != nil {
		if e.Coordinates == nil {
			// Never fails on distance grounds; the flag alone decides.
			return fs.IncludeWithoutLocation
		}

		d := geo.Distance(*fs.Center, *e.Coordinates)
		if d < fs.MinDistance {
			return false
		}
		if fs.MaxDistance > 0 && d > fs.MaxDistance {
			return false
		}
	}

	return true
}

// inDateRange checks [today, end); a zero end means no upper bound. Past
// events are suppressed regardless of the chosen range. A missing or
// malformed date never matches.
func inDateRange(date string, today, end time.Time) bool {
	d, err := time.ParseInLocation(models.DateLayout, date, today.Location())
	if err != nil {
		return false
	}

	if d.Before(today) {
		return false
	}
	if !end.IsZero() && d.After(end) {
		return false
	}

	return true
}

func rangeEnd(today time.Time, r models.DateRange) time.Time {
	switch r {
	case models.RangeNextWeek:
		return today.AddDate(0, 0, 7)
	case models.RangeNextMonth:
		return today.AddDate(0, 1, 0)
	case models.RangeNext3Months:
		return today.AddDate(0, 3, 0)
	case models.RangeNext6Months:
		return today.AddDate(0, 6, 0)
	default:
		// anytime, or the zero FilterState
		return time.Time{}
	}
}

func hasAnyCategory(e models.Event, categories []string) bool {
	for _, c := range categories {
		if e.HasCategory(c) {
			return true
		}
	}
	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
