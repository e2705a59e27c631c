// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL and no HTTP lives here — services depend on the
// repo interface and the RouteResolver interface, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/repo"
	"trip-planner-service/internal/route"
)

// RouteResolver defines the provider operations the trip service depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". route.Client is the
// production implementation; tests inject a function-field mock.
type RouteResolver interface {
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
	Directions(ctx context.Context, origin, dest domain.Coordinates) (route.Route, error)
}

// PlanInput carries the fields of a create-trip request.
type PlanInput struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
}

// TripService implements the create-trip-with-route orchestration and the
// read operations.
type TripService struct {
	repo     repo.TripRepo
	resolver RouteResolver
}

// NewTripService constructs a TripService backed by the provided repo and
// route resolver.
func NewTripService(r repo.TripRepo, resolver RouteResolver) *TripService {
	return &TripService{repo: r, resolver: resolver}
}

// Plan validates the input, resolves and routes the current→pickup→dropoff
// legs, applies the hours-of-service rule, and persists the trip.
//
// Creation is all-or-nothing: any validation, geocoding, routing, or
// hours-limit failure returns before the store is touched.
func (s *TripService) Plan(ctx context.Context, in PlanInput) (domain.TripPlan, error) {
	if err := validatePlanInput(in); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	current := strings.TrimSpace(in.CurrentLocation)
	pickup := strings.TrimSpace(in.PickupLocation)
	dropoff := strings.TrimSpace(in.DropoffLocation)

	// Resolve each place independently, then route consecutive pairs —
	// two pairwise calls, no multi-stop optimization.
	currentPt, err := s.resolver.Geocode(ctx, current)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: current location: %w", err)
	}
	pickupPt, err := s.resolver.Geocode(ctx, pickup)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: pickup location: %w", err)
	}
	dropoffPt, err := s.resolver.Geocode(ctx, dropoff)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: dropoff location: %w", err)
	}

	toPickup, err := s.resolver.Directions(ctx, currentPt, pickupPt)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: current to pickup: %w", err)
	}
	toDropoff, err := s.resolver.Directions(ctx, pickupPt, dropoffPt)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: pickup to dropoff: %w", err)
	}

	legs := []domain.RouteLeg{
		{From: current, To: pickup, DistanceKm: toPickup.DistanceKm, DurationHrs: toPickup.DurationHrs, Steps: toPickup.Steps},
		{From: pickup, To: dropoff, DistanceKm: toDropoff.DistanceKm, DurationHrs: toDropoff.DurationHrs, Steps: toDropoff.Steps},
	}

	check, err := hos.Evaluate(in.CurrentCycleUsed, legs)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Trip{
		CurrentLocation:  current,
		PickupLocation:   pickup,
		DropoffLocation:  dropoff,
		CurrentCycleUsed: in.CurrentCycleUsed,
	})
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	return domain.TripPlan{
		Trip:             created,
		Legs:             legs,
		TotalDistanceKm:  toPickup.DistanceKm + toDropoff.DistanceKm,
		TotalDurationHrs: check.TotalDurationHrs,
		FuelingStops:     check.FuelingStops,
		HoursRemaining:   check.HoursRemaining,
	}, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips. Always returns a non-nil slice so callers can
// safely range and JSON-encode it as [] rather than null.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// validatePlanInput enforces the create-trip field rules: all three locations
// present, within the column bound, and a non-negative cycle value.
func validatePlanInput(in PlanInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"current_location", in.CurrentLocation},
		{"pickup_location", in.PickupLocation},
		{"dropoff_location", in.DropoffLocation},
	}
	for _, f := range fields {
		trimmed := strings.TrimSpace(f.value)
		if trimmed == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
		if len(trimmed) > domain.MaxLocationLen {
			return fmt.Errorf("%w: %s must be at most %d characters",
				domain.ErrValidation, f.name, domain.MaxLocationLen)
		}
	}
	if in.CurrentCycleUsed < 0 {
		return fmt.Errorf("%w: current_cycle_used must not be negative", domain.ErrValidation)
	}
	return nil
}
