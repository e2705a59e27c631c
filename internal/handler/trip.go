package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/service"
)

// createTripRequest is the body of POST /trips. current_cycle_used is a
// pointer so a missing field is rejected rather than read as zero.
type createTripRequest struct {
	CurrentLocation  string   `json:"current_location"`
	PickupLocation   string   `json:"pickup_location"`
	DropoffLocation  string   `json:"dropoff_location"`
	CurrentCycleUsed *float64 `json:"current_cycle_used"`
}

// routeLegResponse is one leg of the route breakdown, with distance and
// duration rounded to two decimals for presentation.
type routeLegResponse struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	DistanceKm  float64  `json:"distance_km"`
	DurationHrs float64  `json:"duration_hrs"`
	Steps       []string `json:"steps"`
}

type routeResponse struct {
	Legs             []routeLegResponse `json:"legs"`
	TotalDistanceKm  float64            `json:"total_distance_km"`
	TotalDurationHrs float64            `json:"total_duration_hrs"`
	FuelingStops     int                `json:"fueling_stops"`
}

// createTripResponse is the 201 body of POST /trips.
type createTripResponse struct {
	Trip             domain.Trip   `json:"trip"`
	Route            routeResponse `json:"route"`
	CurrentCycleUsed float64       `json:"current_cycle_used"`
	HoursRemaining   float64       `json:"hours_remaining"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.CurrentCycleUsed == nil {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used is required")
		return
	}

	plan, err := s.trips.Plan(r.Context(), service.PlanInput{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: *req.CurrentCycleUsed,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, planToResponse(plan))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, trip)
}

// --- mapping helpers --------------------------------------------------------

// planToResponse converts a domain.TripPlan into the response DTO, applying
// two-decimal rounding to distances and durations. The hours-of-service
// comparison has already happened on full precision.
func planToResponse(p domain.TripPlan) createTripResponse {
	legs := make([]routeLegResponse, len(p.Legs))
	for i, leg := range p.Legs {
		legs[i] = routeLegResponse{
			From:        leg.From,
			To:          leg.To,
			DistanceKm:  round2(leg.DistanceKm),
			DurationHrs: round2(leg.DurationHrs),
			Steps:       leg.Steps,
		}
	}

	return createTripResponse{
		Trip: p.Trip,
		Route: routeResponse{
			Legs:             legs,
			TotalDistanceKm:  round2(p.TotalDistanceKm),
			TotalDurationHrs: round2(p.TotalDurationHrs),
			FuelingStops:     p.FuelingStops,
		},
		CurrentCycleUsed: p.Trip.CurrentCycleUsed,
		HoursRemaining:   round2(p.HoursRemaining),
	}
}

// round2 rounds to two decimal places for presentation.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
