package listEvents

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"portugalRunning/internal/filter"
	"portugalRunning/internal/lib/api/response"
	"portugalRunning/internal/models"
	"portugalRunning/internal/pagination"
	"portugalRunning/internal/storage/eventstore"
)

type EventsResponse struct {
	response.Response
	Events     []models.Event        `json:"events"`
	Pagination models.PaginationMeta `json:"pagination"`
	SnapshotID string                `json:"snapshot_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SnapshotProvider
type SnapshotProvider interface {
	Snapshot() eventstore.Snapshot
}

// New returns the event list handler. Query parameters: q, categories, range,
// dates, center (lat,lon), min_distance, max_distance, include_no_location,
// page, page_size. The response names the snapshot it was rendered from so a
// client can tell two pages came from the same dataset load.
func New(log *slog.Logger, provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.listEvents.New"

		log := log.With(slog.String("op", op))

		fs, page, pageSize, err := parseQuery(r)
		if err != nil {
			log.Info("bad filter query", slog.String("error", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		snap := provider.Snapshot()

		matched := filter.Filter(snap.Events, fs, time.Now())

		totalPages := pagination.TotalPages(len(matched), pageSize)
		page = pagination.Clamp(page, totalPages)

		events := pagination.Page(matched, page, pageSize)
		if events == nil {
			events = []models.Event{}
		}

		log.Info("events filtered",
			slog.Int("matched", len(matched)),
			slog.Int("page", page),
		)

		render.JSON(w, r, EventsResponse{
			Response: response.OK(),
			Events:   events,
			Pagination: models.PaginationMeta{
				Page:       page,
				PageSize:   pageSize,
				TotalItems: len(matched),
				TotalPages: totalPages,
			},
			SnapshotID: snap.ID,
		})
	}
}

func parseQuery(r *http.Request) (models.FilterState, int, int, error) {
	q := r.URL.Query()

	fs := models.FilterState{
		Query:         q.Get("q"),
		Categories:    splitList(q.Get("categories")),
		SelectedDates: splitList(q.Get("dates")),
		DateRange:     models.RangeAnytime,
	}

	if v := q.Get("range"); v != "" {
		dr := models.DateRange(v)
		if !models.ValidDateRange(dr) {
			return fs, 0, 0, fmt.Errorf("invalid date range: %s", v)
		}
		fs.DateRange = dr
	}

	if v := q.Get("center"); v != "" {
		center, err := parseCenter(v)
		if err != nil {
			return fs, 0, 0, err
		}
		fs.Center = center
	}

	if v := q.Get("min_distance"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 {
			return fs, 0, 0, fmt.Errorf("invalid min_distance: %s", v)
		}
		fs.MinDistance = d
	}

	if v := q.Get("max_distance"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 {
			return fs, 0, 0, fmt.Errorf("invalid max_distance: %s", v)
		}
		fs.MaxDistance = d
	}

	fs.IncludeWithoutLocation = q.Get("include_no_location") == "true"

	page := 1
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return fs, 0, 0, fmt.Errorf("invalid page: %s", v)
		}
		page = p
	}

	pageSize := pagination.DefaultPageSize
	if v := q.Get("page_size"); v != "" {
		ps, err := strconv.Atoi(v)
		if err != nil || ps < 1 || ps > 100 {
			return fs, 0, 0, fmt.Errorf("invalid page_size: %s", v)
		}
		pageSize = ps
	}

	return fs, page, pageSize, nil
}

func parseCenter(v string) (*models.Coordinates, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid center: %s", v)
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid center: %s", v)
	}

	return &models.Coordinates{Lat: lat, Lon: lon}, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
