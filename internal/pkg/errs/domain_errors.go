package errs

import "errors"

// Failure classes shared by every booking-core layer. Use-case errors carry one of these
// as a mark so transports can classify with errs.Is.
var (
	// malformed or missing input; never retried, nothing committed
	ErrValidation = errors.New("validation failed")

	// unknown experience, slot or booking reference
	ErrNotFound = errors.New("not found")

	// slot already booked
	ErrConflict = errors.New("conflict")

	// storage unreachable or failing
	ErrUnavailable = errors.New("storage unavailable")
)
