package domain

import (
	"fmt"
	"strings"
)

// InvalidActionError reports a mutation action the cart endpoint does
// not recognize. It is raised before any request leaves the process.
type InvalidActionError struct {
	Action string
	Valid  []string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q, must be one of: %s", e.Action, strings.Join(e.Valid, ", "))
}

// TransportError reports a non-success status from the commerce API.
// Requests failing this way are never retried.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("commerce api: %s (status %d)", e.Message, e.StatusCode)
}
