package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is returned when the remote catalog cannot serve a request
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrStaleResult is returned when a fetch completed after the query it was issued for changed
	ErrStaleResult = errors.New("stale result discarded")
)

// FetchError describes a failed request against the remote catalog.
// Kind is only meaningful for product listings.
type FetchError struct {
	Op   string
	Kind QueryKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnavailable) match any fetch failure that is not a plain miss
func (e *FetchError) Is(target error) bool {
	return target == ErrUnavailable && !errors.Is(e.Err, ErrNotFound)
}
