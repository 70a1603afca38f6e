package session

import "errors"

var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordMismatch indicates the registration passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidInput indicates invalid session input.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrNoUsers indicates registration had no account to sign in as.
	ErrNoUsers = errors.New("no users available")
)
