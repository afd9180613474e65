package calendar

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"portugalRunning/internal/lib/api/response"
	"portugalRunning/internal/models"
)

// DayEvents aggregates the events taking place on one calendar date.
type DayEvents struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	EventIDs []int  `json:"event_ids"`
}

type CalendarResponse struct {
	response.Response
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Days  []DayEvents `json:"days"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsProvider
type EventsProvider interface {
	Events() []models.Event
}

// New returns the calendar aggregation handler. The whole month is shown,
// past days included; year and month default to the current month.
func New(log *slog.Logger, provider EventsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.calendar.New"

		log := log.With(slog.String("op", op))

		now := time.Now()

		year, month, err := parseYearMonth(r, now)
		if err != nil {
			log.Info("bad calendar query", slog.String("error", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		days := aggregate(provider.Events(), year, month)

		log.Info("calendar aggregated",
			slog.Int("year", year),
			slog.Int("month", month),
			slog.Int("days_with_events", len(days)),
		)

		render.JSON(w, r, CalendarResponse{
			Response: response.OK(),
			Year:     year,
			Month:    month,
			Days:     days,
		})
	}
}

func aggregate(events []models.Event, year, month int) []DayEvents {
	byDate := make(map[string][]int)

	for _, e := range events {
		d, err := time.Parse(models.DateLayout, e.Date)
		if err != nil {
			continue
		}
		if d.Year() != year || int(d.Month()) != month {
			continue
		}

		byDate[e.Date] = append(byDate[e.Date], e.ID)
	}

	days := make([]DayEvents, 0, len(byDate))
	for date, ids := range byDate {
		sort.Ints(ids)
		days = append(days, DayEvents{
			Date:     date,
			Count:    len(ids),
			EventIDs: ids,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days
}

func parseYearMonth(r *http.Request, now time.Time) (int, int, error) {
	q := r.URL.Query()

	year := now.Year()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 2200 {
			return 0, 0, fmt.Errorf("invalid year: %s", v)
		}
		year = y
	}

	month := int(now.Month())
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month: %s", v)
		}
		month = m
	}

	return year, month, nil
}
