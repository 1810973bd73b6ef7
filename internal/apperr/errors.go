package apperr

import "errors"

// Sentinel error classes. Handlers map these onto HTTP statuses;
// lower layers wrap them with context via fmt.Errorf and %w.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
	ErrUpstream   = errors.New("upstream provider failure")
)
