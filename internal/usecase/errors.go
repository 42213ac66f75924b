package usecase

import "errors"

// Sentinel errors services wrap with fmt.Errorf("%w: ...") context. The HTTP
// layer maps them to response statuses, so every user-facing failure must
// chain to one of these.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
