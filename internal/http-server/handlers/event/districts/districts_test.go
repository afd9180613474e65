package districts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portugalRunning/internal/http-server/handlers/event/districts/mocks"
	"portugalRunning/internal/lib/logger/handlers/slogdiscard"
	"portugalRunning/internal/models"
)

func TestDistrictsHandler(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		{ID: 1, Name: "Maratona do Porto", Locality: "Porto", Categories: []string{"marathon"}},
		{ID: 2, Name: "Corrida de Gaia", Coordinates: &models.Coordinates{Lat: 41.13, Lon: -8.61}, Categories: []string{"run"}},
		{ID: 3, Name: "Corrida de Lisboa", Locality: "Lisboa", Categories: []string{"10k"}},
		{ID: 4, Name: "Corrida Virtual", Categories: []string{"run"}},
	}

	provider := mocks.NewEventsProvider(t)
	provider.On("Events").Return(events)

	handler := New(slogdiscard.NewDiscardLogger(), provider)

	req := httptest.NewRequest(http.MethodGet, "/districts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp DistrictsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, 1, resp.Unassigned)

	require.Len(t, resp.Districts, 2)

	// Fixed district order: Lisboa before Porto.
	assert.Equal(t, "Lisboa", resp.Districts[0].Name)
	assert.Equal(t, []int{3}, resp.Districts[0].EventIDs)

	assert.Equal(t, "Porto", resp.Districts[1].Name)
	assert.Equal(t, 2, resp.Districts[1].Count)
	assert.Equal(t, []int{1, 2}, resp.Districts[1].EventIDs)
	assert.InDelta(t, 41.1579, resp.Districts[1].Centroid.Lat, 1e-4)
}

func TestDistrictsHandlerEmptyStore(t *testing.T) {
	t.Parallel()

	provider := mocks.NewEventsProvider(t)
	provider.On("Events").Return([]models.Event{})

	handler := New(slogdiscard.NewDiscardLogger(), provider)

	req := httptest.NewRequest(http.MethodGet, "/districts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp DistrictsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "OK", resp.Status)
	assert.Empty(t, resp.Districts)
	assert.Zero(t, resp.Unassigned)
}
