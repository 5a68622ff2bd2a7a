package dblp

import (
	"errors"
	"fmt"
)

// Common errors returned by the dblp client. A RemoteQueryError wraps one of
// these (or a transport error) so callers can match with errors.Is.
var (
	// ErrNetwork indicates the request never produced an HTTP response.
	ErrNetwork = errors.New("network error communicating with dblp")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from dblp")

	// ErrRateLimited indicates the service answered 429.
	ErrRateLimited = errors.New("dblp rate limit exceeded")

	// ErrHTTPStatus indicates any other non-success status.
	ErrHTTPStatus = errors.New("dblp returned an error status")
)

// Service names used in RemoteQueryError.
const (
	ServiceSPARQL = "sparql"
	ServiceSearch = "search"
)

// RemoteQueryError is returned for every failure talking to either remote
// service: transport errors, non-success statuses, and undecodable bodies.
type RemoteQueryError struct {
	Service    string // ServiceSPARQL or ServiceSearch
	StatusCode int    // 0 when no response was received
	Message    string
	Err        error
}

func (e *RemoteQueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dblp %s query failed (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("dblp %s query failed: %s", e.Service, e.Message)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// IsRemoteQueryError reports whether err is, or wraps, a RemoteQueryError.
func IsRemoteQueryError(err error) bool {
	var rqe *RemoteQueryError
	return errors.As(err, &rqe)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var rqe *RemoteQueryError
	if errors.As(err, &rqe) {
		return rqe.StatusCode == 429
	}
	return false
}
