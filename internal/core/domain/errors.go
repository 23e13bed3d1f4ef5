package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable marks a domain whose backing artifact is absent.
	// Recovered locally: the domain is skipped, never fatal.
	ErrDataUnavailable = errors.New("domain data unavailable")
	// ErrMalformedArtifact marks an artifact that loads but is missing
	// required fields. Treated as ErrDataUnavailable, logged for operators.
	ErrMalformedArtifact = errors.New("malformed artifact")
	ErrInvalidInput      = errors.New("invalid input")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
