package domain

import "errors"

// Sentinel errors shared by the usecase and delivery layers. Handlers map
// them to HTTP status codes with errors.Is, so wrapping with %w is required
// when adding context.
var (
	// ErrValidation covers missing or malformed required fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySubscribed is returned on a duplicate subscription attempt.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUpstream covers failures of external collaborators (image host,
	// email transport). Not retried automatically.
	ErrUpstream = errors.New("upstream failure")
)
