package workspace

import (
	"slices"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/user"
)

// Workspace is the container of one client's projects and team members.
type Workspace struct {
	ID         string      `json:"id"`
	ClientID   string      `json:"client_id"`
	ProjectIDs []string    `json:"project_ids"`
	Members    []user.User `json:"members"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Clone returns a copy whose slices are not shared with w.
func (w Workspace) Clone() Workspace {
	w.ProjectIDs = slices.Clone(w.ProjectIDs)
	if w.ProjectIDs == nil {
		w.ProjectIDs = []string{}
	}
	w.Members = slices.Clone(w.Members)
	if w.Members == nil {
		w.Members = []user.User{}
	}
	return w
}
