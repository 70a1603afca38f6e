// Package seed describes the fixture data a workspace store is initialized
// from, along with the sources that can supply it.
package seed

import (
	"errors"
	"slices"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
)

// ErrInvalidSeed indicates seed data that breaks a referential or domain rule.
var ErrInvalidSeed = errors.New("invalid seed data")

// Workspace is the seed form of a workspace. Members are referenced by user
// id; project references are derived from the projects collection on import.
type Workspace struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	ClientID  string    `json:"client_id" yaml:"client_id" validate:"required"`
	MemberIDs []string  `json:"member_ids" yaml:"member_ids"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Data is a complete snapshot of fixture records.
type Data struct {
	Users         []user.User       `json:"users" yaml:"users" validate:"dive"`
	Clients       []client.Client   `json:"clients" yaml:"clients" validate:"dive"`
	Projects      []project.Project `json:"projects" yaml:"projects" validate:"dive"`
	Workspaces    []Workspace       `json:"workspaces" yaml:"workspaces" validate:"dive"`
	Tasks         []task.Task       `json:"tasks,omitempty" yaml:"tasks,omitempty" validate:"dive"`
	CurrentUserID string            `json:"current_user_id,omitempty" yaml:"current_user_id,omitempty"`
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := Data{
		Users:         slices.Clone(d.Users),
		Clients:       slices.Clone(d.Clients),
		Projects:      make([]project.Project, 0, len(d.Projects)),
		Workspaces:    make([]Workspace, 0, len(d.Workspaces)),
		Tasks:         make([]task.Task, 0, len(d.Tasks)),
		CurrentUserID: d.CurrentUserID,
	}
	for _, p := range d.Projects {
		out.Projects = append(out.Projects, p.Clone())
	}
	for _, w := range d.Workspaces {
		w.MemberIDs = slices.Clone(w.MemberIDs)
		out.Workspaces = append(out.Workspaces, w)
	}
	for _, t := range d.Tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	return out
}
