package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the upstream provider rejects the
	// credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrQuotaExceeded is returned when the upstream billing quota is
	// exhausted.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrUpstreamRateLimited is returned when the upstream provider applies
	// its own rate limit.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	// ErrRateLimited is returned when the gateway's local request budget is
	// exhausted.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmptyCompletion is returned when the upstream reply carries no text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// ValidationError rejects malformed or missing input. Message is the
// user-facing text returned by the gateway.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
