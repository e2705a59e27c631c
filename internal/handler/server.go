// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, eldlog.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or provider.
type TripServicer interface {
	Plan(ctx context.Context, in service.PlanInput) (domain.TripPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
}

// ELDLogServicer defines the log-sheet operation the ELD handler depends on.
type ELDLogServicer interface {
	Render(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	trips   TripServicer
	eldLogs ELDLogServicer
	openAPI []byte
}

// NewServer constructs the Server with all its dependencies.
// openAPI is the raw OpenAPI document served at /openapi.yaml; pass nil to
// disable that route.
func NewServer(trips TripServicer, eldLogs ELDLogServicer, openAPI []byte) *Server {
	return &Server{trips: trips, eldLogs: eldLogs, openAPI: openAPI}
}

// Routes returns the chi router for the full API surface.
// Trailing-slash variants are handled by the StripSlashes middleware wired
// in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Post("/trips", s.CreateTrip)
	r.Get("/trips", s.ListTrips)
	r.Get("/trips/{id}", s.GetTrip)
	r.Get("/eld-log/{tripID}", s.GetELDLog)

	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	return r
}
