package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the handler layer maps onto HTTP status codes. Policy
// denials keep their own sentinel (policy.ErrDenied -> 403).
var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalid maps to 400.
	ErrInvalid = errors.New("invalid request")
)

func notFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
