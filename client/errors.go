package client

import (
	"fmt"
	"net/http"
)

// maxErrorBody caps how much of a failed reply is kept on HTTPError.
const maxErrorBody = 4 * 1024

// HTTPError is returned when the backend replied with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (%s %s)", e.StatusCode, e.Method, e.URL)
}

// Temporary reports whether the status suggests the backend is still starting
// up or overloaded.
func (e *HTTPError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// NetworkError is returned when the request never produced a reply:
// DNS failure, refused connection, reset, and the like.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
