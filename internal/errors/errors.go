package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoSessionBus    = errors.New("session bus unavailable")
	ErrNoActiveSession = errors.New("no active player session")
	ErrSessionGone     = errors.New("player session disappeared")
	ErrNoLyrics        = errors.New("no synced lyrics found")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// PillError wraps an error with a user-friendly suggestion.
type PillError struct {
	Err        error
	Suggestion string
}

func (e *PillError) Error() string {
	return e.Err.Error()
}

func (e *PillError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PillError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var pillErr *PillError
	if errors.As(err, &pillErr) && pillErr.Suggestion != "" {
		return pillErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNoSessionBus) || strings.Contains(errStr, "session bus") ||
		strings.Contains(errStr, "dbus") {
		return "Make sure a D-Bus session bus is running (DBUS_SESSION_BUS_ADDRESS)"
	}

	if errors.Is(err, ErrNoActiveSession) || strings.Contains(errStr, "no active player") {
		return "Start a media player that speaks MPRIS, or check your filter settings"
	}

	if errors.Is(err, ErrNoLyrics) {
		return "The lyric provider has no synced lyrics for this track"
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'musicpill config show' to inspect your configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
