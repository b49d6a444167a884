package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired indicates that an authenticated request got a 401 and the
// refresh attempt failed. The session has already been logged out; the caller
// should send the user back to the login entry point.
var ErrSessionExpired = errors.New("session expired, please login again")

// HTTPError represents a non-2xx response from the backend
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
