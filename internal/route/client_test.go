package route_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/route"
)

// newClient points a route.Client at a fake provider server.
func newClient(t *testing.T, handler http.Handler) *route.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := route.NewClient("test-key", srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewClient_EmptyAPIKey(t *testing.T) {
	_, err := route.NewClient("", "")
	assert.Error(t, err)
}

func TestGeocode_Success(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Chicago, IL", r.URL.Query().Get("text"))
		assert.Equal(t, "1", r.URL.Query().Get("size"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-87.6298,41.8781]}}]}`))
	}))

	got, err := c.Geocode(context.Background(), "  Chicago,   IL ")

	require.NoError(t, err)
	assert.InDelta(t, -87.6298, got.Lon, 1e-9)
	assert.InDelta(t, 41.8781, got.Lat, 1e-9)
}

func TestGeocode_NoMatch(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))

	_, err := c.Geocode(context.Background(), "Nowhereville XQZ")

	assert.ErrorIs(t, err, domain.ErrGeocoding)
}

func TestGeocode_EmptyPlace(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty place")
	}))

	_, err := c.Geocode(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrGeocoding)
}

func TestDirections_Success(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/driving-car", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		// 482,800 m and 18,000 s → 482.8 km, 5 hrs.
		w.Write([]byte(`{"routes":[{
			"summary":{"distance":482800,"duration":18000},
			"segments":[{"steps":[{"instruction":"Head south"},{"instruction":"Arrive at destination"}]}]
		}]}`))
	}))

	got, err := c.Directions(context.Background(),
		domain.Coordinates{Lon: -87.6298, Lat: 41.8781},
		domain.Coordinates{Lon: -90.1994, Lat: 38.627},
	)

	require.NoError(t, err)
	assert.InDelta(t, 482.8, got.DistanceKm, 1e-9)
	assert.InDelta(t, 5.0, got.DurationHrs, 1e-9)
	assert.Equal(t, []string{"Head south", "Arrive at destination"}, got.Steps)
}

func TestDirections_NoRoute404(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":2009,"message":"Route could not be found"}}`, http.StatusNotFound)
	}))

	_, err := c.Directions(context.Background(), domain.Coordinates{}, domain.Coordinates{})

	assert.ErrorIs(t, err, domain.ErrRouting)
}

func TestDirections_EmptyRoutes(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	}))

	_, err := c.Directions(context.Background(), domain.Coordinates{}, domain.Coordinates{})

	assert.ErrorIs(t, err, domain.ErrRouting)
}

func TestDoJSON_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1,2]}}]}`))
	}))

	_, err := c.Geocode(context.Background(), "Chicago")

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "503 should be retried once")
}

func TestDoJSON_NoRetryOnAuthFailure(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))

	_, err := c.Geocode(context.Background(), "Chicago")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGeocoding, "auth failure is not a no-match")
	assert.Equal(t, int32(1), calls.Load(), "4xx other than 429 must not be retried")
}
