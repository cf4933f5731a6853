package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the bearer credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// BackendError is a non-success response that carried a payload. Message is
// the service-provided human-readable text, possibly empty.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// ErrorMessage normalizes err into a user-facing string: the backend-provided
// message when there is one, otherwise the operation-specific fallback. The
// UI layer always gets something renderable, never a raw error dump.
func ErrorMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
