package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/workspace-nexus/internal/dashboard"
	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/domain/session"
	"github.com/rpggio/workspace-nexus/internal/domain/task"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/domain/workspace"
	"github.com/rpggio/workspace-nexus/internal/store"
)

// WorkspaceStore defines store operations needed by MCP.
type WorkspaceStore interface {
	State() store.Snapshot
	SearchClients(query string) []client.Client
	SelectClient(ctx context.Context, clientID string) error
	AddClient(ctx context.Context, req client.CreateRequest) (*client.Client, error)
	AddProject(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	ProjectsByClient(clientID string) []project.Project
	TasksByProject(projectID string) []task.Task
	CurrentWorkspace() *workspace.Workspace
}

// SessionService defines sign-in operations needed by MCP.
type SessionService interface {
	Login(ctx context.Context, req session.LoginRequest) (*user.User, error)
	Register(ctx context.Context, req session.RegisterRequest) (*user.User, error)
	Logout(ctx context.Context)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	store    WorkspaceStore
	sessions SessionService
}

// NewHandler creates a new MCP handler.
func NewHandler(ws WorkspaceStore, sessions SessionService) *Handler {
	return &Handler{
		store:    ws,
		sessions: sessions,
	}
}

// Handle dispatches a tool call to the store or session service.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "get_state":
		snap := h.store.State()
		return StateResponse{
			CurrentUser:      snap.CurrentUser,
			CurrentClient:    snap.Selection.Client,
			CurrentWorkspace: snap.Selection.Workspace,
			VisibleProjects:  snap.Selection.Projects,
			Clients:          snap.Collections.Clients,
			Busy:             snap.Busy,
			LastError:        snap.LastError,
		}, nil
	case "list_clients":
		var req ListClientsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.store.SearchClients(req.Query), nil
	case "select_client":
		var req ClientIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.store.SelectClient(ctx, req.ClientID); err != nil {
			return nil, mapError(err)
		}
		sel := h.store.State().Selection
		return SelectionResponse{
			Client:    sel.Client,
			Workspace: sel.Workspace,
			Projects:  sel.Projects,
		}, nil
	case "add_client":
		var req AddClientParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		c, err := h.store.AddClient(ctx, client.CreateRequest{
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
			Status: client.Status(req.Status),
			Logo:   req.Logo,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return AddClientResponse{Client: c, Workspace: h.store.CurrentWorkspace()}, nil
	case "add_project":
		var req AddProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		start, err := parseDate("start_date", req.StartDate)
		if err != nil {
			return nil, mapError(err)
		}
		end, err := parseDate("end_date", req.EndDate)
		if err != nil {
			return nil, mapError(err)
		}
		p, err := h.store.AddProject(ctx, project.CreateRequest{
			Name:        req.Name,
			Description: req.Description,
			Status:      project.Status(req.Status),
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return p, nil
	case "get_projects_by_client":
		var req ClientIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.store.ProjectsByClient(req.ClientID), nil
	case "list_tasks":
		var req ListTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.store.TasksByProject(req.ProjectID), nil
	case "get_dashboard":
		return dashboard.Build(h.store.State()), nil
	case "login":
		var req LoginParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		u, err := h.sessions.Login(ctx, session.LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			return nil, mapError(err)
		}
		return u, nil
	case "register":
		var req RegisterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		u, err := h.sessions.Register(ctx, session.RegisterRequest{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return u, nil
	case "logout":
		h.sessions.Logout(ctx)
		return LogoutResponse{SignedOut: true}, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", errInvalidParams, err))
	}
	return nil
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Empty input means no date.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q is not a date", project.ErrInvalidInput, field, value)
}
