package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the store, ledger and service layers when an
// operation targets an id that does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. day index out of range, transport details on a meal, empty split).
// It is never silently corrected.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrExternalService is returned by generator and estimator implementations
// when the remote call fails or yields unusable data.
// The planner catches it at its boundary; it never reaches a handler.
var ErrExternalService = errors.New("external service error")

// ErrBusy is returned when a plan generation is requested while another one
// is still outstanding.
// Handlers should map this to HTTP 409 Conflict.
var ErrBusy = errors.New("generation already in progress")

// ErrNoPendingPlan is returned when confirming or reading a pending plan that
// does not exist. It wraps ErrNotFound so handlers can treat it as a 404.
var ErrNoPendingPlan = fmt.Errorf("pending plan %w", ErrNotFound)

// ErrNoTrip is returned by every session operation before a trip has been set
// up. It wraps ErrNotFound.
var ErrNoTrip = fmt.Errorf("trip %w", ErrNotFound)

// validationf builds an ErrValidation-wrapped error with a formatted detail.
func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
