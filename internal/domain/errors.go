package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotConfigured means the backend credential is missing or empty. Never retried.
	ErrNotConfigured = errors.New("completion backend credential is not configured")
	ErrEmptyUserText = errors.New("user text must not be empty")
	ErrEmptyResponse = errors.New("empty response from completion backend")
	ErrTimeout       = errors.New("timeout: completion backend took too long")

	ErrTurnInFlight     = errors.New("a reply is already being generated for this session")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidMoodEntry = errors.New("invalid mood entry")
)

// BackendError is a non-2xx answer from the completion backend.
type BackendError struct {
	StatusCode int
	Status     string // backend status name, e.g. UNAVAILABLE
	Message    string
}

func (e *BackendError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("backend http %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("backend http %d: %s", e.StatusCode, e.Message)
}

// IsOverloaded reports whether err is the transient "over capacity" signal:
// a 503 status or an "overloaded" marker in the message.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}

	var be *BackendError
	if errors.As(err, &be) {
		if be.StatusCode == http.StatusServiceUnavailable {
			return true
		}
		return strings.Contains(strings.ToLower(be.Message), "overloaded")
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") || strings.Contains(msg, "overloaded")
}
