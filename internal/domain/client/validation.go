package client

import (
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/validate"
)

// Validate checks a creation request and fills in defaults. Empty names and
// emails are accepted; only the status domain is enforced.
func (r *CreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if r.Status == "" {
		r.Status = StatusActive
	}
	return nil
}
