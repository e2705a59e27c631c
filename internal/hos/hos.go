// Package hos implements the FMCSA hours-of-service check applied before a
// trip is persisted. It is a pure package: no I/O, no clock, no state.
package hos

import (
	"fmt"
	"math"

	"trip-planner-service/internal/domain"
)

const (
	// CycleLimitHours is the 70-hour/8-day on-duty ceiling.
	CycleLimitHours = 70.0

	// PickupDropoffHours is the fixed service overhead added to every trip:
	// one hour at the pickup dock plus one hour at the dropoff dock.
	PickupDropoffHours = 2.0

	// FuelStopIntervalKm is the distance between fueling stops,
	// roughly 1,000 miles.
	FuelStopIntervalKm = 1609.0
)

// Check is the outcome of a successful hours-of-service evaluation.
type Check struct {
	// TotalDurationHrs is driving time across all legs plus PickupDropoffHours.
	TotalDurationHrs float64
	// FuelingStops is the number of rest/refuel stops the trip requires.
	FuelingStops int
	// HoursRemaining is what is left of the 70-hour cycle after this trip.
	HoursRemaining float64
}

// Evaluate computes the total trip duration and fueling-stop count for the
// given legs and checks the result against the 70-hour cycle ceiling.
//
// The comparison uses full precision — rounding happens only at presentation
// time, so a trip is never accepted or rejected by a rounding artifact.
// A trip that lands exactly on the limit is accepted (the rejection is
// strictly greater-than).
func Evaluate(cycleUsedHrs float64, legs []domain.RouteLeg) (Check, error) {
	total := PickupDropoffHours
	var distance float64
	for _, leg := range legs {
		total += leg.DurationHrs
		distance += leg.DistanceKm
	}

	if cycleUsedHrs+total > CycleLimitHours {
		return Check{}, fmt.Errorf(
			"%w: %.2f hours used + %.2f hour trip exceeds %.0f-hour cycle limit",
			domain.ErrHoursLimit, cycleUsedHrs, total, CycleLimitHours,
		)
	}

	return Check{
		TotalDurationHrs: total,
		FuelingStops:     int(math.Floor(distance / FuelStopIntervalKm)),
		HoursRemaining:   CycleLimitHours - (cycleUsedHrs + total),
	}, nil
}
