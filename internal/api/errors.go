package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from the service. The body is never
// partially decoded; callers get either a value or a StatusError.
type StatusError struct {
	Status     int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d %s", e.Status, e.StatusText)
}

// IsNotFound reports whether err is a 404 response. The by-email reader
// lookup treats this as an expected outcome, not a failure.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound
}
