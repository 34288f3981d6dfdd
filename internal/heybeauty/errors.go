package heybeauty

import "fmt"

// ValidationError reports a missing or empty required argument. It is returned
// before any HTTP call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a non-2xx HTTP status from the remote API. The
// response body is not parsed as an envelope in that case.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote API returned status %d", e.StatusCode)
}

// RemoteError reports a non-zero envelope code. Message is the remote
// message verbatim.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// NotFoundError reports a clothing item missing from the remote catalog.
type NotFoundError struct {
	ClothID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cloth %q not found", e.ClothID)
}
