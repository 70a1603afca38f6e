package store

import (
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/domain/workspace"
	"github.com/rpggio/workspace-nexus/internal/seed"
)

// importSeed converts validated seed data into store state. Clients without
// a workspace get an empty one. Workspace project references are rebuilt from
// the projects collection so they always match it.
func (s *Store) importSeed(d seed.Data) (state, error) {
	if obs, ok := s.ids.(idObserver); ok {
		for _, c := range d.Clients {
			obs.Observe(KindClient, c.ID)
		}
		for _, p := range d.Projects {
			obs.Observe(KindProject, p.ID)
		}
		for _, w := range d.Workspaces {
			obs.Observe(KindWorkspace, w.ID)
		}
	}

	users := make(map[string]user.User, len(d.Users))
	for _, u := range d.Users {
		users[u.ID] = u
	}

	st := state{
		Collections: Collections{
			Users:      append([]user.User{}, d.Users...),
			Clients:    d.Clients,
			Projects:   d.Projects,
			Workspaces: make([]workspace.Workspace, 0, len(d.Clients)),
			Tasks:      d.Tasks,
		},
	}
	if st.Clients == nil {
		st.Clients = []client.Client{}
	}
	if st.Projects == nil {
		st.Projects = []project.Project{}
	}
	if st.Tasks == nil {
		st.Tasks = []task.Task{}
	}

	owned := make(map[string]bool, len(d.Workspaces))
	for _, sw := range d.Workspaces {
		ws := workspace.Workspace{
			ID:         sw.ID,
			ClientID:   sw.ClientID,
			ProjectIDs: projectIDsOf(st.Projects, sw.ClientID),
			Members:    make([]user.User, 0, len(sw.MemberIDs)),
			CreatedAt:  sw.CreatedAt,
		}
		for _, id := range sw.MemberIDs {
			u, ok := users[id]
			if !ok {
				return state{}, fmt.Errorf("workspace %s: unknown member %s", sw.ID, id)
			}
			ws.Members = append(ws.Members, u)
		}
		st.Workspaces = append(st.Workspaces, ws)
		owned[sw.ClientID] = true
	}

	for _, c := range st.Clients {
		if owned[c.ID] {
			continue
		}
		ws := workspace.Workspace{
			ID:         s.nextID(&st, KindWorkspace),
			ClientID:   c.ID,
			ProjectIDs: projectIDsOf(st.Projects, c.ID),
			Members:    []user.User{},
			CreatedAt:  c.CreatedAt,
		}
		st.Workspaces = append(st.Workspaces, ws)
		s.logger.Warn("seed client has no workspace, created an empty one",
			"client_id", c.ID, "workspace_id", ws.ID)
	}

	if d.CurrentUserID != "" {
		u, ok := users[d.CurrentUserID]
		if !ok {
			return state{}, fmt.Errorf("unknown current user %s", d.CurrentUserID)
		}
		st.currentUser = &u
	}
	return st, nil
}

func projectIDsOf(projects []project.Project, clientID string) []string {
	ids := []string{}
	for _, p := range projects {
		if p.ClientID == clientID {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
