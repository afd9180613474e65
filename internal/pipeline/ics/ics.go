// Package ics extracts the handful of VEVENT fields the pipeline needs from
// the upstream export-events ICS files. The exports are small single-event
// files, so this is a field extractor, not a general iCalendar parser.
package ics

import (
	"strings"
	"time"

	"portugalRunning/internal/models"
)

// EventData holds the fields extracted from one ICS export.
type EventData struct {
	Summary     string
	Location    string
	Description string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
}

// Parse extracts the VEVENT fields from raw ICS content. Missing fields stay
// empty; malformed dates are dropped rather than reported.
func Parse(content string) EventData {
	var data EventData

	for _, line := range unfold(content) {
		name, value, ok := splitProperty(line)
		if !ok {
			continue
		}

		switch name {
		case "SUMMARY":
			data.Summary = unescape(value)
		case "LOCATION":
			data.Location = unescape(value)
		case "DESCRIPTION":
			data.Description = unescape(value)
		case "DTSTART":
			data.StartDate = parseDate(value)
		case "DTEND":
			data.EndDate = parseDate(value)
		}
	}

	return data
}

// unfold joins continuation lines (folded lines start with a space or tab).
func unfold(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var lines []string
	for _, line := range raw {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// splitProperty splits "NAME;PARAM=X:value" into the bare property name and
// its value.
func splitProperty(line string) (name, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}

	name = line[:i]
	value = line[i+1:]

	if j := strings.Index(name, ";"); j >= 0 {
		name = name[:j]
	}

	return strings.ToUpper(strings.TrimSpace(name)), value, true
}

// parseDate normalizes "20250610" or "20250610T090000Z" to "2025-06-10".
func parseDate(value string) string {
	digits := value
	if i := strings.Index(digits, "T"); i >= 0 {
		digits = digits[:i]
	}

	if len(digits) != 8 {
		return ""
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ""
		}
	}

	date := digits[:4] + "-" + digits[4:6] + "-" + digits[6:]

	// Round-trip through the canonical layout to reject impossible dates.
	if !validDate(date) {
		return ""
	}

	return date
}

func validDate(date string) bool {
	_, err := time.Parse(models.DateLayout, date)
	return err == nil
}

func unescape(value string) string {
	r := strings.NewReplacer(
		`\n`, "\n",
		`\N`, "\n",
		`\,`, ",",
		`\;`, ";",
		`\\`, `\`,
	)
	return strings.TrimSpace(r.Replace(value))
}
