package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("api: not found")
	ErrUnauthorized = errors.New("api: unauthorized")

	// ErrUnavailable covers transport failures and an open circuit breaker. The
	// caller sees no server message for it.
	ErrUnavailable = errors.New("api: backend unavailable")
)

// Error is a non-2xx reply from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// MessageOf returns the message the backend sent with a failed call, or "" when
// there was none.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
