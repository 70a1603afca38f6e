package client

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrNoClientSelected indicates an operation needed a selected client.
	ErrNoClientSelected = errors.New("no client selected")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
)

// NotFoundError carries the id of a client lookup that missed.
type NotFoundError struct {
	ClientID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("client with ID %s not found", e.ClientID)
}

// Is reports ErrClientNotFound as a match so callers can use errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrClientNotFound
}
