package project

import (
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/validate"
)

// Validate checks a creation request and fills in defaults.
func (r *CreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if r.Status == "" {
		r.Status = StatusPlanning
	}
	return nil
}

// CountByStatus tallies projects per status. Every status is present in the
// result, zero when no project has it.
func CountByStatus(projects []Project) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, p := range projects {
		counts[p.Status]++
	}
	return counts
}
