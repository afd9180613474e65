// Package eventstore holds the static event dataset in memory. The dataset
// file is read wholesale; each successful load produces an immutable
// snapshot that is swapped in atomically, so a render cycle always sees one
// consistent collection.
package eventstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"portugalRunning/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// Snapshot is one immutable load of the dataset. Events must not be mutated
// by consumers.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Events   []models.Event
}

type Storage struct {
	path     string
	log      *slog.Logger
	validate *validator.Validate

	mu   sync.RWMutex
	snap Snapshot
}

// New loads the dataset from path. Loading must succeed at startup; later
// reload failures keep the previous snapshot.
func New(path string, log *slog.Logger) (*Storage, error) {
	s := &Storage{
		path:     path,
		log:      log,
		validate: validator.New(),
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload reads the dataset file and swaps in a new snapshot. Records failing
// schema validation are skipped with a warning, not fatal.
func (s *Storage) Reload() error {
	const op = "storage.eventstore.Reload"

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%s: read dataset: %w", op, err)
	}

	var raw []models.Event
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: decode dataset: %w", op, err)
	}

	events := make([]models.Event, 0, len(raw))
	for _, e := range raw {
		if err := s.validate.Struct(e); err != nil {
			s.log.Warn("skipping invalid event record",
				slog.String("op", op),
				slog.Int("id", e.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if e.Date != "" {
			if _, err := time.Parse(models.DateLayout, e.Date); err != nil {
				s.log.Warn("event has malformed date",
					slog.String("op", op),
					slog.Int("id", e.ID),
					slog.String("date", e.Date),
				)
			}
		}

		events = append(events, e)
	}

	snap := Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now(),
		Events:   events,
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.log.Info("dataset loaded",
		slog.String("op", op),
		slog.String("snapshot_id", snap.ID),
		slog.Int("events", len(events)),
		slog.Int("skipped", len(raw)-len(events)),
	)

	return nil
}

// ReloadEvery reloads the dataset on the given interval until done is
// closed. A failed reload keeps the previous snapshot.
func (s *Storage) ReloadEvery(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Reload(); err != nil {
				s.log.Error("failed to reload event dataset",
					slog.String("error", err.Error()),
				)
			}
		case <-done:
			return
		}
	}
}

// Snapshot returns the current snapshot.
func (s *Storage) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Events returns the current snapshot's event collection.
func (s *Storage) Events() []models.Event {
	return s.Snapshot().Events
}

// EventByID returns the event with the given id or ErrEventNotFound.
func (s *Storage) EventByID(id int) (models.Event, error) {
	for _, e := range s.Events() {
		if e.ID == id {
			return e, nil
		}
	}

	return models.Event{}, ErrEventNotFound
}
