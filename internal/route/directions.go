package route

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trip-planner-service/internal/domain"
)

// Route is the distance/duration/steps result of a single directions call.
// Values carry full precision; rounding is left to the presentation layer.
type Route struct {
	DistanceKm  float64
	DurationHrs float64
	Steps       []string
}

type directionsRequest struct {
	// Coordinates is [[lon, lat], [lon, lat]] — origin then destination.
	Coordinates [][]float64 `json:"coordinates"`
}

// directionsResponse is the subset of the /v2/directions response we consume.
// Summary metrics are pointers so an absent field is detected rather than
// silently read as zero.
type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance *float64 `json:"distance"` // meters
			Duration *float64 `json:"duration"` // seconds
		} `json:"summary"`
		Segments []struct {
			Steps []struct {
				Instruction string `json:"instruction"`
			} `json:"steps"`
		} `json:"segments"`
	} `json:"routes"`
}

// Directions computes a driving route between two resolved points.
// One outbound request per call. Returns domain.ErrRouting when the provider
// cannot find a route between the points (ORS signals this with a 404).
func (c *Client) Directions(ctx context.Context, origin, dest domain.Coordinates) (Route, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, c.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{{origin.Lon, origin.Lat}, {dest.Lon, dest.Lat}},
	})
	if err != nil {
		return Route{}, fmt.Errorf("route.Directions: marshal request: %w", err)
	}

	var decoded directionsResponse
	err = c.doJSON(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	}, &decoded)
	if err != nil {
		var serr *statusError
		if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
			return Route{}, fmt.Errorf("%w: no route between points", domain.ErrRouting)
		}
		return Route{}, fmt.Errorf("route.Directions: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return Route{}, fmt.Errorf("%w: provider returned no routes", domain.ErrRouting)
	}

	r := decoded.Routes[0]
	if r.Summary.Distance == nil || r.Summary.Duration == nil {
		return Route{}, errors.New("route.Directions: response missing summary metrics")
	}

	var steps []string
	for _, seg := range r.Segments {
		for _, step := range seg.Steps {
			steps = append(steps, step.Instruction)
		}
	}

	return Route{
		DistanceKm:  *r.Summary.Distance / 1000.0,
		DurationHrs: *r.Summary.Duration / 3600.0,
		Steps:       steps,
	}, nil
}
