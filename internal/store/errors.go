package store

import "errors"

// ErrOperationFailed indicates a mutation aborted unexpectedly. State is left
// as it was before the call.
var ErrOperationFailed = errors.New("operation failed")

// Generic last-error messages for recovered failures.
const (
	msgSelectFailed     = "failed to switch workspace"
	msgAddClientFailed  = "failed to create client"
	msgAddProjectFailed = "failed to create project"
	msgSetUserFailed    = "failed to set current user"
)
