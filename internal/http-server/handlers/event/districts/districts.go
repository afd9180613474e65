package districts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"portugalRunning/internal/geo"
	"portugalRunning/internal/lib/api/response"
	"portugalRunning/internal/models"
)

// DistrictEvents is the map-view payload for one district.
type DistrictEvents struct {
	Name     string             `json:"name"`
	Centroid models.Coordinates `json:"centroid"`
	Count    int                `json:"count"`
	EventIDs []int              `json:"event_ids"`
}

type DistrictsResponse struct {
	response.Response
	Districts  []DistrictEvents `json:"districts"`
	Unassigned int              `json:"unassigned"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsProvider
type EventsProvider interface {
	Events() []models.Event
}

// New returns the district map handler: every event is resolved to one of
// the 18 districts; the fixed district order keeps the payload stable.
func New(log *slog.Logger, provider EventsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.districts.New"

		log := log.With(slog.String("op", op))

		byDistrict := make(map[string][]int)

		unassigned := 0
		for _, e := range provider.Events() {
			name := geo.ResolveDistrict(e)
			if name == "" {
				unassigned++
				continue
			}
			byDistrict[name] = append(byDistrict[name], e.ID)
		}

		out := make([]DistrictEvents, 0, len(byDistrict))
		for _, d := range geo.Districts() {
			ids, ok := byDistrict[d.Name]
			if !ok {
				continue
			}
			out = append(out, DistrictEvents{
				Name:     d.Name,
				Centroid: d.Centroid,
				Count:    len(ids),
				EventIDs: ids,
			})
		}

		log.Info("events grouped by district",
			slog.Int("districts", len(out)),
			slog.Int("unassigned", unassigned),
		)

		render.JSON(w, r, DistrictsResponse{
			Response:   response.OK(),
			Districts:  out,
			Unassigned: unassigned,
		})
	}
}
