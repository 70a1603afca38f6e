package seed

import (
	"errors"
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/validate"
)

// Validate checks id uniqueness, enum domains and every cross-collection
// reference. All problems are reported together.
func Validate(d Data) error {
	var problems []error

	if err := validate.Struct(d); err != nil {
		problems = append(problems, err)
	}

	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		if users[u.ID] {
			problems = append(problems, fmt.Errorf("duplicate user id %q", u.ID))
		}
		users[u.ID] = true
	}

	clients := make(map[string]bool, len(d.Clients))
	for _, c := range d.Clients {
		if clients[c.ID] {
			problems = append(problems, fmt.Errorf("duplicate client id %q", c.ID))
		}
		clients[c.ID] = true
	}

	projects := make(map[string]bool, len(d.Projects))
	for _, p := range d.Projects {
		if projects[p.ID] {
			problems = append(problems, fmt.Errorf("duplicate project id %q", p.ID))
		}
		projects[p.ID] = true
		if !clients[p.ClientID] {
			problems = append(problems, fmt.Errorf("project %q references unknown client %q", p.ID, p.ClientID))
		}
	}

	workspaceIDs := make(map[string]bool, len(d.Workspaces))
	owners := make(map[string]string, len(d.Workspaces))
	for _, w := range d.Workspaces {
		if workspaceIDs[w.ID] {
			problems = append(problems, fmt.Errorf("duplicate workspace id %q", w.ID))
		}
		workspaceIDs[w.ID] = true
		if !clients[w.ClientID] {
			problems = append(problems, fmt.Errorf("workspace %q references unknown client %q", w.ID, w.ClientID))
		}
		if other, ok := owners[w.ClientID]; ok {
			problems = append(problems, fmt.Errorf("workspaces %q and %q share client %q", other, w.ID, w.ClientID))
		}
		owners[w.ClientID] = w.ID
		for _, m := range w.MemberIDs {
			if !users[m] {
				problems = append(problems, fmt.Errorf("workspace %q references unknown member %q", w.ID, m))
			}
		}
	}

	taskIDs := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if taskIDs[t.ID] {
			problems = append(problems, fmt.Errorf("duplicate task id %q", t.ID))
		}
		taskIDs[t.ID] = true
		if !projects[t.ProjectID] {
			problems = append(problems, fmt.Errorf("task %q references unknown project %q", t.ID, t.ProjectID))
		}
	}

	if d.CurrentUserID != "" && !users[d.CurrentUserID] {
		problems = append(problems, fmt.Errorf("current user %q is not a known user", d.CurrentUserID))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSeed, errors.Join(problems...))
}
