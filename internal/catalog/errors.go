package catalog

import "fmt"

// TransportError reports a request that never produced a usable response:
// dial failures, timeouts, canceled contexts, undecodable bodies.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog: request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response from the catalog API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog: status %d from %s", e.StatusCode, e.URL)
}
