package getEvent

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"portugalRunning/internal/lib/api/response"
	"portugalRunning/internal/lib/logger/sl"
	"portugalRunning/internal/models"
	"portugalRunning/internal/storage/eventstore"
)

type EventResponse struct {
	response.Response
	Event models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	EventByID(id int) (models.Event, error)
}

func New(log *slog.Logger, getter EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log := log.With(slog.String("op", op))

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Info("invalid event id", slog.String("id", chi.URLParam(r, "id")))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		event, err := getter.EventByID(id)
		if errors.Is(err, eventstore.ErrEventNotFound) {
			log.Info("event not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event"))
			return
		}

		log.Info("event retrieved", slog.Int("id", id))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
