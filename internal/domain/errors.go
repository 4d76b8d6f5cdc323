package domain

import "errors"

// ErrInvalidFormat is returned when a raw registration number string fails
// format validation. It is raised at construction time and never reaches the
// repo layer. Handlers should map this to HTTP 422.
var ErrInvalidFormat = errors.New("invalid registration number")

// ErrUnknownType is returned when a vehicle type string does not match any of
// the known wire values. Handlers should map this to HTTP 422.
var ErrUnknownType = errors.New("unknown vehicle type")

// ErrValidation is returned when brand or model fails the aggregate's business
// rules (empty or over 60 characters). The wrapped message names the offending
// field. Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")

// ErrIllegalState is returned on an invalid aggregate lifecycle transition —
// currently only an attempt to assign an ID to a vehicle that already has one.
var ErrIllegalState = errors.New("illegal state transition")

// ErrNotFound is returned by repo and service functions when the requested
// vehicle does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a registration number is already taken by
// another vehicle — either by the service-layer pre-check or by the unique
// index when two writers race. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("registration number already in use")

// ErrStorage is returned when the database is unreachable or a statement
// fails for reasons unrelated to the data itself. It always wraps the
// driver error. Handlers should map this to HTTP 500.
var ErrStorage = errors.New("storage unavailable")
