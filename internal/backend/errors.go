package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// UnavailableError reports a transport-level failure talking to a backend:
// connection refused, timeout, or a malformed response body. The message is
// stable and user-facing; the cause is available via Unwrap for logs.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s service unavailable", e.Service)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response from a backend.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return "not found"
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// IsUnavailable reports whether err is a transport-level backend failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
