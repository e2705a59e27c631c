package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing location, negative cycle hours).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrGeocoding is returned when the routing provider cannot resolve a
// free-text place name to coordinates. The address is user-correctable,
// so handlers map this to HTTP 400.
var ErrGeocoding = errors.New("geocoding error")

// ErrRouting is returned when the routing provider finds no driving route
// between two resolved points. Handlers map this to HTTP 400.
var ErrRouting = errors.New("routing error")

// ErrHoursLimit is returned when a planned trip would push the driver past
// the 70-hour duty-cycle ceiling. This is a hard business-rule rejection
// (no trip is persisted), mapped to HTTP 400.
var ErrHoursLimit = errors.New("hours of service limit exceeded")
