package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrPersonNotFound is returned when a config references an id that is
	// not part of the graph.
	ErrPersonNotFound = errors.New("person not found")

	// ErrInvalidConfig is returned when a config is structurally incomplete.
	ErrInvalidConfig = errors.New("invalid strategy config")

	// ErrUnknownStrategy is returned for a strategy name or config type
	// that Compute does not handle.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// NotFoundError names the config field whose id is missing from the graph.
type NotFoundError struct {
	Role string // "root", "anchor", "start", "end"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s person not found: %s", e.Role, e.ID)
}

// Unwrap lets errors.Is match ErrPersonNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrPersonNotFound
}

func notFound(role, id string) error {
	return &NotFoundError{Role: role, ID: id}
}
