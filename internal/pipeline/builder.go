// Package pipeline assembles the canonical events dataset from the upstream
// WordPress API, calendar exports, and the geocoder. It runs offline; the
// serving application only ever reads its output file.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"sort"
	"strings"

	"portugalRunning/internal/lib/logger/sl"
	"portugalRunning/internal/models"
	"portugalRunning/internal/pipeline/geocoding"
	"portugalRunning/internal/pipeline/ics"
	"portugalRunning/internal/pipeline/taxonomy"
	"portugalRunning/internal/pipeline/wpapi"
)

const shortDescriptionLimit = 200

type EventSource interface {
	EventsPage(ctx context.Context, page int) ([]wpapi.EventSummary, error)
	EventDetail(ctx context.Context, id int) (*wpapi.EventDetail, error)
	EventICS(ctx context.Context, id int) (string, error)
	TermNames(ctx context.Context, ids []int) ([]string, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, location string) (*geocoding.Result, error)
}

type Builder struct {
	source   EventSource
	geocoder Geocoder // nil skips geocoding
	log      *slog.Logger
	limit    int // 0 means no limit
}

func NewBuilder(source EventSource, geocoder Geocoder, log *slog.Logger, limit int) *Builder {
	return &Builder{
		source:   source,
		geocoder: geocoder,
		log:      log,
		limit:    limit,
	}
}

// CollectIDs walks the event listing pages until the API runs out.
func (b *Builder) CollectIDs(ctx context.Context) ([]int, error) {
	const op = "pipeline.Builder.CollectIDs"

	var ids []int
	for page := 1; ; page++ {
		summaries, err := b.source.EventsPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(summaries) == 0 {
			break
		}

		for _, s := range summaries {
			ids = append(ids, s.ID)
			if b.limit > 0 && len(ids) >= b.limit {
				return ids, nil
			}
		}
	}

	return ids, nil
}

// Build assembles the full dataset, sorted by date then id so output is
// stable across runs. Events that fail to assemble are logged and skipped.
func (b *Builder) Build(ctx context.Context) ([]models.Event, error) {
	const op = "pipeline.Builder.Build"

	ids, err := b.CollectIDs(ctx)
	if err != nil {
		return nil, err
	}

	b.log.Info("collected event ids", slog.String("op", op), slog.Int("count", len(ids)))

	events := make([]models.Event, 0, len(ids))
	for _, id := range ids {
		event, err := b.BuildEvent(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			b.log.Warn("skipping event", slog.Int("id", id), sl.Err(err))
			continue
		}

		events = append(events, *event)
	}

	sortEvents(events)

	return events, nil
}

// BuildEvent assembles one canonical event record.
func (b *Builder) BuildEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "pipeline.Builder.BuildEvent"

	detail, err := b.source.EventDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event := &models.Event{
		ID:              detail.ID,
		Name:            html.UnescapeString(detail.Title.Rendered),
		RegistrationURL: detail.Link,
	}

	terms, err := b.source.TermNames(ctx, detail.EventTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, term := range terms {
		if !taxonomy.Known(term) {
			b.log.Warn("unknown event type term", slog.Int("id", id), slog.String("term", term))
		}
	}
	event.Categories, event.Distances = taxonomy.Canonicalize(terms)

	raw, err := b.source.EventICS(ctx, id)
	if err != nil {
		// The record is still useful without its calendar export.
		b.log.Warn("no ics export", slog.Int("id", id), sl.Err(err))
	} else {
		calendar := ics.Parse(raw)

		event.Date = calendar.StartDate
		event.EndDate = calendar.EndDate
		event.Location = calendar.Location
		event.Description = calendar.Description
		event.DescriptionShort = shorten(calendar.Description)

		if b.geocoder != nil && calendar.Location != "" {
			b.geocode(ctx, event, calendar.Location)
		}
	}

	return event, nil
}

func (b *Builder) geocode(ctx context.Context, event *models.Event, location string) {
	result, err := b.geocoder.Geocode(ctx, location)
	if errors.Is(err, geocoding.ErrNoResults) {
		b.log.Warn("location not geocodable", slog.Int("id", event.ID), slog.String("location", location))
		return
	}
	if err != nil {
		b.log.Warn("geocoding failed", slog.Int("id", event.ID), sl.Err(err))
		return
	}

	event.Coordinates = &models.Coordinates{Lat: result.Lat, Lon: result.Lon}
	event.Locality = result.Locality
	event.Country = result.Country
}

// WriteDataset writes events as indented JSON via a temp file and rename so
// a serving process never reads a partial dataset.
func WriteDataset(path string, events []models.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: encode dataset: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("pipeline: write dataset: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("pipeline: rename dataset: %w", err)
	}

	return nil
}

// sortEvents orders by date then id; events without a date go last.
func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := events[i].Date, events[j].Date
		if di == dj {
			return events[i].ID < events[j].ID
		}
		if di == "" {
			return false
		}
		if dj == "" {
			return true
		}
		return di < dj
	})
}

// shorten trims a description to a teaser at a word boundary.
func shorten(description string) string {
	s := strings.Join(strings.Fields(description), " ")
	if len(s) <= shortDescriptionLimit {
		return s
	}

	cut := strings.LastIndex(s[:shortDescriptionLimit], " ")
	if cut <= 0 {
		cut = shortDescriptionLimit
	}

	return s[:cut] + "…"
}
