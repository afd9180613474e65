package listEvents

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portugalRunning/internal/http-server/handlers/event/listEvents/mocks"
	"portugalRunning/internal/lib/logger/handlers/slogdiscard"
	"portugalRunning/internal/models"
	"portugalRunning/internal/storage/eventstore"
)

const testSnapshotID = "7c9f2b4e-0000-4000-8000-000000000001"

func testSnapshot(events []models.Event) eventstore.Snapshot {
	return eventstore.Snapshot{ID: testSnapshotID, Events: events}
}

// Fixture dates live far in the future so past-event suppression never kicks
// in regardless of the wall clock.
func testEvents() []models.Event {
	porto := models.Coordinates{Lat: 41.1579, Lon: -8.6291}
	lisboa := models.Coordinates{Lat: 38.7223, Lon: -9.1393}

	return []models.Event{
		{ID: 1, Name: "Maratona do Porto", Date: "2099-11-02", Categories: []string{"run", "marathon"}, Coordinates: &porto},
		{ID: 2, Name: "Corrida de Lisboa", Date: "2099-10-05", Categories: []string{"10k"}, Coordinates: &lisboa},
		{ID: 3, Name: "Trail de Sintra", Date: "2099-09-20", Categories: []string{"trail"}},
	}
}

func decode(t *testing.T, body []byte) EventsResponse {
	t.Helper()

	var resp EventsResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	return resp
}

func TestListEventsHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		url         string
		expectedIDs []int
	}{
		{
			name:        "no filters returns everything",
			url:         "/events",
			expectedIDs: []int{1, 2, 3},
		},
		{
			name:        "text search",
			url:         "/events?q=porto",
			expectedIDs: []int{1},
		},
		{
			name:        "category filter",
			url:         "/events?categories=marathon",
			expectedIDs: []int{1},
		},
		{
			name:        "multiple categories",
			url:         "/events?categories=marathon,trail",
			expectedIDs: []int{1, 3},
		},
		{
			name:        "calendar dates",
			url:         "/events?dates=2099-09-20",
			expectedIDs: []int{3},
		},
		{
			name:        "proximity around Lisboa",
			url:         "/events?center=38.7223,-9.1393&max_distance=50000",
			expectedIDs: []int{2},
		},
		{
			name:        "proximity including events without location",
			url:         "/events?center=38.7223,-9.1393&max_distance=50000&include_no_location=true",
			expectedIDs: []int{2, 3},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewSnapshotProvider(t)
			provider.On("Snapshot").Return(testSnapshot(testEvents()))

			handler := New(slogdiscard.NewDiscardLogger(), provider)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			resp := decode(t, rr.Body.Bytes())
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, testSnapshotID, resp.SnapshotID)

			var ids []int
			for _, e := range resp.Events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestListEventsPagination(t *testing.T) {
	t.Parallel()

	events := make([]models.Event, 30)
	for i := range events {
		events[i] = models.Event{
			ID:         i + 1,
			Name:       fmt.Sprintf("Corrida %d", i+1),
			Date:       "2099-06-01",
			Categories: []string{"run"},
		}
	}

	provider := mocks.NewSnapshotProvider(t)
	provider.On("Snapshot").Return(testSnapshot(events))

	handler := New(slogdiscard.NewDiscardLogger(), provider)

	req := httptest.NewRequest(http.MethodGet, "/events?page=3", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode(t, rr.Body.Bytes())
	assert.Len(t, resp.Events, 6)
	assert.Equal(t, 25, resp.Events[0].ID)
	assert.Equal(t, models.PaginationMeta{
		Page:       3,
		PageSize:   12,
		TotalItems: 30,
		TotalPages: 3,
	}, resp.Pagination)
}

func TestListEventsPageClampedIntoRange(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSnapshotProvider(t)
	provider.On("Snapshot").Return(testSnapshot(testEvents()))

	handler := New(slogdiscard.NewDiscardLogger(), provider)

	req := httptest.NewRequest(http.MethodGet, "/events?page=99", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode(t, rr.Body.Bytes())
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Len(t, resp.Events, 3)
}

func TestListEventsEmptyResult(t *testing.T) {
	t.Parallel()

	provider := mocks.NewSnapshotProvider(t)
	provider.On("Snapshot").Return(testSnapshot([]models.Event{}))

	handler := New(slogdiscard.NewDiscardLogger(), provider)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode(t, rr.Body.Bytes())
	assert.Empty(t, resp.Events)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
	assert.Equal(t, 0, resp.Pagination.TotalItems)
	assert.Equal(t, 1, resp.Pagination.Page)
}

func TestListEventsBadQuery(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		url  string
	}{
		{"bad range", "/events?range=someday"},
		{"bad center", "/events?center=not-a-point"},
		{"center out of bounds", "/events?center=123,456"},
		{"bad page", "/events?page=zero"},
		{"negative page", "/events?page=-2"},
		{"bad page size", "/events?page_size=0"},
		{"oversized page size", "/events?page_size=5000"},
		{"bad min distance", "/events?min_distance=abc"},
		{"negative max distance", "/events?max_distance=-5"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewSnapshotProvider(t)

			handler := New(slogdiscard.NewDiscardLogger(), provider)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp EventsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Error", resp.Status)
			assert.NotEmpty(t, resp.Error)
		})
	}
}
