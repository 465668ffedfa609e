package client

import "fmt"

// RemoteRequestError is an application-level failure reported by the
// server for a control-plane call: the request reached the server but
// came back with a non-200 status.
type RemoteRequestError struct {
	// Op names the failed operation, e.g. "start session".
	Op string
	// StatusCode is the HTTP status the server returned.
	StatusCode int
	// Message is the server-supplied error field, or a generic message
	// when the body carries none.
	Message string
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}
