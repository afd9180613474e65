package getEvent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portugalRunning/internal/http-server/handlers/event/getEvent/mocks"
	"portugalRunning/internal/lib/logger/handlers/slogdiscard"
	"portugalRunning/internal/models"
	"portugalRunning/internal/storage/eventstore"
)

func newRequest(t *testing.T, id string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/events/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetEventHandler(t *testing.T) {
	t.Parallel()

	testEvent := models.Event{
		ID:         7,
		Name:       "Maratona de Lisboa",
		Date:       "2099-10-12",
		Categories: []string{"run", "marathon"},
		Locality:   "Lisboa",
		Country:    "Portugal",
	}

	testCases := []struct {
		name           string
		id             string
		mockSetup      func(mock *mocks.EventGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "success",
			id:   "7",
			mockSetup: func(mock *mocks.EventGetter) {
				mock.On("EventByID", 7).Return(testEvent, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp EventResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, 7, resp.Event.ID)
				assert.Equal(t, "Maratona de Lisboa", resp.Event.Name)
				assert.Equal(t, "Lisboa", resp.Event.Locality)
			},
		},
		{
			name: "not found",
			id:   "42",
			mockSetup: func(mock *mocks.EventGetter) {
				mock.On("EventByID", 42).Return(models.Event{}, eventstore.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "invalid id",
			id:             "abc",
			mockSetup:      func(mock *mocks.EventGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(slogdiscard.NewDiscardLogger(), mockGetter)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(t, tc.id))

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
