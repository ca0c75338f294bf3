package ports

import "errors"

// ErrForbidden is returned when the presented API key does not match.
var ErrForbidden = errors.New("forbidden")

type KeyGuard interface {
	// Validate checks the presented credentials against the expected secret.
	// The header value takes precedence over the query value when both are
	// present, even if the header value is wrong.
	Validate(headerKey, queryKey string) error
}
