package route

import (
	"context"
	"fmt"
	"net/http"

	"trip-planner-service/internal/domain"
)

// geocodeResponse is the subset of the /geocode/search response we consume.
// Fields are optional in the provider schema, so lengths are validated
// before indexing.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			// Coordinates is [lon, lat] per the GeoJSON convention.
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text place name to coordinates using the provider's
// best match. Each call is one outbound request — no caching.
// Returns domain.ErrGeocoding when the provider has no match for the place.
func (c *Client) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	norm := normalize(place)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: place name is empty", domain.ErrGeocoding)
	}

	endpoint := c.baseURL + "/geocode/search"

	var decoded geocodeResponse
	err := c.doJSON(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}, &decoded)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("route.Geocode %q: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no match for %q", domain.ErrGeocoding, norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("route.Geocode %q: invalid coordinate format", norm)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
