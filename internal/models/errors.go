package models

import "errors"

// Request-level failures. Handlers match them with errors.Is and turn them
// into a flash message plus a redirect.
var (
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrInvalidCredential   = errors.New("invalid username or password")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrValidation          = errors.New("validation failed")
	ErrGenerationFailed    = errors.New("course generation failed")
	ErrNotFound            = errors.New("not found")
)
