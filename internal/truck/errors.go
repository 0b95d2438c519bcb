package truck

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned by import when the payload is missing a
// trucks array.
var ErrInvalidFormat = errors.New("invalid data format")

// NotFoundError is returned when a truck id is absent from the store.
// The message format is part of the external contract; UI callers surface
// it verbatim.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Truck not found: " + e.ID
}

// NewNotFound returns a NotFoundError for the given truck id.
func NewNotFound(id string) error {
	return &NotFoundError{ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UnavailableError indicates the durable medium could not be read or
// written. List-style reads degrade to an empty result on this error;
// everything else propagates it.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// NewUnavailable wraps err as an UnavailableError.
func NewUnavailable(err error) error {
	return &UnavailableError{Err: err}
}

// IsUnavailable reports whether err is an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// RequestError is returned by the remote backend for non-2xx responses.
// Message carries the server-supplied error when available, otherwise a
// status-derived fallback.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}
