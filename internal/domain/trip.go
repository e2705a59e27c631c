// Package domain contains the core data types for the Trip Planner API.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (repo, route, hos, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a single logged truck trip. Records are write-once: once created
// they are never updated or deleted, only read back for listing and for
// ELD log rendering.
type Trip struct {
	ID              uuid.UUID `json:"id"`
	CurrentLocation string    `json:"current_location"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	// CurrentCycleUsed is the number of on-duty hours already accrued in the
	// rolling 70-hour duty cycle before this trip starts.
	CurrentCycleUsed float64   `json:"current_cycle_used"`
	CreatedAt        time.Time `json:"created_at"`
}

// MaxLocationLen bounds the free-text location fields, matching the
// varchar(100) columns in the trips table.
const MaxLocationLen = 100

// Coordinates is a geographic point in lon/lat order — the order the routing
// provider expects in its request payloads.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RouteLeg is one origin-to-destination segment of a planned trip
// (current→pickup or pickup→dropoff).
type RouteLeg struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	DistanceKm  float64  `json:"distance_km"`
	DurationHrs float64  `json:"duration_hrs"`
	Steps       []string `json:"steps"`
}

// TripPlan is the full result of a successful trip creation: the persisted
// record plus the computed route breakdown and hours-of-service summary.
// Distance and duration fields carry full precision; rounding to two decimals
// is a presentation concern handled at the HTTP boundary.
type TripPlan struct {
	Trip             Trip
	Legs             []RouteLeg
	TotalDistanceKm  float64
	TotalDurationHrs float64
	FuelingStops     int
	HoursRemaining   float64
}
