package genius

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a Genius API error.
//
// Status is the HTTP status reported in the response meta block (or the
// HTTP status code when the body carries no meta block).
type Error struct {
	Status  int    // HTTP status code
	Message string // Error message from Genius
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("genius: error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Genius error with the same status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Unauthorized returns true if the access token was rejected.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Predefined errors for common cases.
var (
	// ErrUnauthorized matches any *Error with a 401 status via errors.Is.
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Message: "unauthorized"}

	// ErrEmptyQuery is returned when a search has nothing to search for.
	ErrEmptyQuery = errors.New("genius: search query is empty")
)
