package analytics

import "errors"

// Sentinel errors returned by the analytics service. Handlers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrNotFound means the creator or content entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInsufficientData means the entity exists but has zero or
	// below-threshold performance records. Distinct from ErrNotFound.
	ErrInsufficientData = errors.New("insufficient performance data")

	// ErrInvalidRequest means the prediction input is malformed.
	ErrInvalidRequest = errors.New("invalid request")
)
