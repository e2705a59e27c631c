package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/eld"
	"trip-planner-service/internal/repo"
)

// ELDLogService produces the downloadable ELD log sheet for a stored trip.
type ELDLogService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewELDLogService constructs an ELDLogService backed by the provided repo.
// now supplies the log date; pass nil to use time.Now. Tests pass a fixed
// clock so rendered bytes are reproducible.
func NewELDLogService(r repo.TripRepo, now func() time.Time) *ELDLogService {
	if now == nil {
		now = time.Now
	}
	return &ELDLogService{repo: r, now: now}
}

// Render looks up the trip and returns its log sheet as PDF bytes.
// Returns domain.ErrNotFound (wrapped) when the trip does not exist.
func (s *ELDLogService) Render(ctx context.Context, id uuid.UUID) ([]byte, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ELDLogService.Render: %w", err)
	}

	pdf, err := eld.Render(trip, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("service.ELDLogService.Render: %w", err)
	}
	return pdf, nil
}
