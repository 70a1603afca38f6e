package mcp

import (
	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/domain/workspace"
)

type ListClientsParams struct {
	Query string `json:"query,omitempty"`
}

type ClientIDParams struct {
	ClientID string `json:"client_id"`
}

type AddClientParams struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

type AddProjectParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type ListTasksParams struct {
	ProjectID string `json:"project_id"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParams struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// StateResponse is the get_state payload.
type StateResponse struct {
	CurrentUser      *user.User           `json:"current_user"`
	CurrentClient    *client.Client       `json:"current_client"`
	CurrentWorkspace *workspace.Workspace `json:"current_workspace"`
	VisibleProjects  []project.Project    `json:"visible_projects"`
	Clients          []client.Client      `json:"clients"`
	Busy             bool                 `json:"busy"`
	LastError        string               `json:"last_error,omitempty"`
}

// SelectionResponse describes the selection after select_client.
type SelectionResponse struct {
	Client    *client.Client       `json:"client"`
	Workspace *workspace.Workspace `json:"workspace"`
	Projects  []project.Project    `json:"projects"`
}

// AddClientResponse returns the new client and its workspace.
type AddClientResponse struct {
	Client    *client.Client       `json:"client"`
	Workspace *workspace.Workspace `json:"workspace"`
}

// LogoutResponse confirms sign-out.
type LogoutResponse struct {
	SignedOut bool `json:"signed_out"`
}
