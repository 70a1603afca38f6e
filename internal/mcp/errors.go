package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/session"
	"github.com/rpggio/workspace-nexus/internal/store"
)

// errInvalidParams marks tool arguments that could not be decoded.
var errInvalidParams = errors.New("invalid parameters")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for errors
// with no mapping.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, client.ErrClientNotFound):
		return &APIError{Code: "CLIENT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_clients to see valid ids"}
	case errors.Is(err, client.ErrNoClientSelected):
		return &APIError{Code: "NO_CLIENT_SELECTED", Message: err.Error(), RecoveryHint: "Call select_client or add_client first"}
	case errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check argument names and allowed values"}
	case errors.Is(err, session.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: err.Error(), RecoveryHint: "Check the email; the demo password is \"password\""}
	case errors.Is(err, session.ErrPasswordMismatch):
		return &APIError{Code: "PASSWORD_MISMATCH", Message: err.Error(), RecoveryHint: "Send the same value for password and confirm_password"}
	case errors.Is(err, store.ErrOperationFailed):
		return &APIError{Code: "OPERATION_FAILED", Message: err.Error(), RecoveryHint: "State is unchanged; retry the call"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
