package store

import (
	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/domain/workspace"
)

// Collections holds every record the store owns, in creation order.
type Collections struct {
	Users      []user.User           `json:"users"`
	Clients    []client.Client       `json:"clients"`
	Projects   []project.Project     `json:"projects"`
	Workspaces []workspace.Workspace `json:"workspaces"`
	Tasks      []task.Task           `json:"tasks"`
}

// Clone returns a deep copy of c. Nil collections become empty ones.
func (c Collections) Clone() Collections {
	out := Collections{
		Users:      make([]user.User, len(c.Users)),
		Clients:    make([]client.Client, len(c.Clients)),
		Projects:   make([]project.Project, len(c.Projects)),
		Workspaces: make([]workspace.Workspace, len(c.Workspaces)),
		Tasks:      make([]task.Task, len(c.Tasks)),
	}
	copy(out.Users, c.Users)
	copy(out.Clients, c.Clients)
	for i, p := range c.Projects {
		out.Projects[i] = p.Clone()
	}
	for i, w := range c.Workspaces {
		out.Workspaces[i] = w.Clone()
	}
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Selection is the projection of the collections through the current client.
type Selection struct {
	Client    *client.Client       `json:"client"`
	Workspace *workspace.Workspace `json:"workspace"`
	Projects  []project.Project    `json:"projects"`
}

// DeriveSelection resolves currentClientID against c. An empty or unknown id
// yields an empty selection. Projects is never nil. The result shares no
// memory with c.
func DeriveSelection(c Collections, currentClientID string) Selection {
	sel := Selection{Projects: []project.Project{}}
	if currentClientID == "" {
		return sel
	}

	for i := range c.Clients {
		if c.Clients[i].ID == currentClientID {
			cl := c.Clients[i]
			sel.Client = &cl
			break
		}
	}
	if sel.Client == nil {
		return sel
	}

	for i := range c.Workspaces {
		if c.Workspaces[i].ClientID == currentClientID {
			ws := c.Workspaces[i].Clone()
			sel.Workspace = &ws
			break
		}
	}
	sel.Projects = projectsOf(c.Projects, currentClientID)
	return sel
}

func projectsOf(projects []project.Project, clientID string) []project.Project {
	out := []project.Project{}
	for _, p := range projects {
		if p.ClientID == clientID {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s Selection) clone() Selection {
	out := Selection{Projects: make([]project.Project, len(s.Projects))}
	if s.Client != nil {
		cl := *s.Client
		out.Client = &cl
	}
	if s.Workspace != nil {
		ws := s.Workspace.Clone()
		out.Workspace = &ws
	}
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	return out
}
