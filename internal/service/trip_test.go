package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/repo"
	"trip-planner-service/internal/route"
	"trip-planner-service/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockResolver is a hand-written test double for service.RouteResolver.
type mockResolver struct {
	geocode    func(ctx context.Context, place string) (domain.Coordinates, error)
	directions func(ctx context.Context, origin, dest domain.Coordinates) (route.Route, error)
}

func (m *mockResolver) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	return m.geocode(ctx, place)
}
func (m *mockResolver) Directions(ctx context.Context, origin, dest domain.Coordinates) (route.Route, error) {
	return m.directions(ctx, origin, dest)
}

var _ service.RouteResolver = (*mockResolver)(nil)

// ---- helpers ---------------------------------------------------------------

func validInput() service.PlanInput {
	return service.PlanInput{
		CurrentLocation:  "Chicago, IL",
		PickupLocation:   "St. Louis, MO",
		DropoffLocation:  "Dallas, TX",
		CurrentCycleUsed: 10,
	}
}

// happyResolver geocodes every place and returns a fixed route per leg:
// 2.5 hrs / 400 km for the first call, 3.0 hrs / 900 km for the second.
func happyResolver() *mockResolver {
	var call int
	return &mockResolver{
		geocode: func(_ context.Context, place string) (domain.Coordinates, error) {
			return domain.Coordinates{Lon: 1, Lat: 2}, nil
		},
		directions: func(_ context.Context, _, _ domain.Coordinates) (route.Route, error) {
			call++
			if call == 1 {
				return route.Route{DistanceKm: 400, DurationHrs: 2.5, Steps: []string{"Head south"}}, nil
			}
			return route.Route{DistanceKm: 900, DurationHrs: 3.0, Steps: []string{"Merge onto I-44"}}, nil
		},
	}
}

// echoRepo persists whatever it receives, stamping a fresh ID.
func echoRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = uuid.New()
			return t, nil
		},
	}
}

// ---- Plan tests ------------------------------------------------------------

func TestTripService_Plan_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo(), happyResolver())

	got, err := svc.Plan(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.Trip.ID)
	require.Len(t, got.Legs, 2)
	assert.Equal(t, "Chicago, IL", got.Legs[0].From)
	assert.Equal(t, "St. Louis, MO", got.Legs[0].To)
	assert.Equal(t, "Dallas, TX", got.Legs[1].To)
	// 2.5 + 3.0 driving + 2.0 dock overhead = 7.5; 70 - (10 + 7.5) = 52.5.
	assert.InDelta(t, 7.5, got.TotalDurationHrs, 1e-9)
	assert.InDelta(t, 52.5, got.HoursRemaining, 1e-9)
	assert.InDelta(t, 1300, got.TotalDistanceKm, 1e-9)
	assert.Equal(t, 0, got.FuelingStops)
}

func TestTripService_Plan_TrimsLocations(t *testing.T) {
	svc := service.NewTripService(echoRepo(), happyResolver())

	in := validInput()
	in.PickupLocation = "  St. Louis, MO  "

	got, err := svc.Plan(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "St. Louis, MO", got.Trip.PickupLocation)
}

func TestTripService_Plan_MissingPickup(t *testing.T) {
	resolverCalled := false
	resolver := &mockResolver{
		geocode: func(_ context.Context, _ string) (domain.Coordinates, error) {
			resolverCalled = true
			return domain.Coordinates{}, nil
		},
	}
	svc := service.NewTripService(echoRepo(), resolver)

	in := validInput()
	in.PickupLocation = "   "

	_, err := svc.Plan(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, resolverCalled, "validation must fail before any provider call")
}

func TestTripService_Plan_LocationTooLong(t *testing.T) {
	svc := service.NewTripService(echoRepo(), happyResolver())

	in := validInput()
	in.DropoffLocation = strings.Repeat("x", 101)

	_, err := svc.Plan(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Plan_NegativeCycleUsed(t *testing.T) {
	svc := service.NewTripService(echoRepo(), happyResolver())

	in := validInput()
	in.CurrentCycleUsed = -1

	_, err := svc.Plan(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Plan_GeocodeFailure_NoPersist(t *testing.T) {
	persisted := false
	r := &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			persisted = true
			return t, nil
		},
	}
	resolver := &mockResolver{
		geocode: func(_ context.Context, place string) (domain.Coordinates, error) {
			return domain.Coordinates{}, domain.ErrGeocoding
		},
	}
	svc := service.NewTripService(r, resolver)

	_, err := svc.Plan(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrGeocoding)
	assert.False(t, persisted, "no trip may be persisted when geocoding fails")
}

func TestTripService_Plan_RoutingFailure_NoPersist(t *testing.T) {
	persisted := false
	r := &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			persisted = true
			return t, nil
		},
	}
	resolver := &mockResolver{
		geocode: func(_ context.Context, _ string) (domain.Coordinates, error) {
			return domain.Coordinates{Lon: 1, Lat: 2}, nil
		},
		directions: func(_ context.Context, _, _ domain.Coordinates) (route.Route, error) {
			return route.Route{}, domain.ErrRouting
		},
	}
	svc := service.NewTripService(r, resolver)

	_, err := svc.Plan(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrRouting)
	assert.False(t, persisted, "no trip may be persisted when routing fails")
}

func TestTripService_Plan_HoursLimitExceeded_NoPersist(t *testing.T) {
	persisted := false
	r := &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			persisted = true
			return t, nil
		},
	}
	resolver := &mockResolver{
		geocode: func(_ context.Context, _ string) (domain.Coordinates, error) {
			return domain.Coordinates{Lon: 1, Lat: 2}, nil
		},
		directions: func(_ context.Context, _, _ domain.Coordinates) (route.Route, error) {
			return route.Route{DistanceKm: 700, DurationHrs: 4.0}, nil
		},
	}
	svc := service.NewTripService(r, resolver)

	// 65 used + (4 + 4 driving + 2 overhead) = 75 > 70.
	in := validInput()
	in.CurrentCycleUsed = 65

	_, err := svc.Plan(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrHoursLimit)
	assert.False(t, persisted, "no trip may be persisted when the hours limit is exceeded")
}

func TestTripService_Plan_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r, happyResolver())

	_, err := svc.Plan(context.Background(), validInput())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- read tests ------------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := domain.Trip{ID: uuid.New(), PickupLocation: "St. Louis, MO"}
	r := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return want, nil
		},
	}
	svc := service.NewTripService(r, happyResolver())

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r, happyResolver())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r, happyResolver())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	// Should return an empty slice, not nil — it JSON-encodes as [].
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
