package mcp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/workspace-nexus/internal/mcp"
	"github.com/rpggio/workspace-nexus/internal/store"
	"github.com/rpggio/workspace-nexus/internal/testserver"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
}

func TestServer_ListTools(t *testing.T) {
	ts := testserver.New(t)

	res, err := ts.Session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 11)

	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"get_state", "select_client", "add_client", "add_project", "get_dashboard", "login"} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestServer_SelectAndCreateFlow(t *testing.T) {
	ts := testserver.New(t, store.WithClock(fixedClock))

	var state mcp.StateResponse
	ts.MustCall(t, "get_state", nil, &state)
	require.Nil(t, state.CurrentClient)
	require.Empty(t, state.VisibleProjects)
	require.Len(t, state.Clients, 3)

	var sel mcp.SelectionResponse
	ts.MustCall(t, "select_client", map[string]any{"client_id": "client1"}, &sel)
	require.Equal(t, "client1", sel.Client.ID)
	require.Equal(t, "workspace1", sel.Workspace.ID)
	require.Len(t, sel.Projects, 2)

	var created struct {
		ID       string `json:"id"`
		ClientID string `json:"client_id"`
		Status   string `json:"status"`
	}
	ts.MustCall(t, "add_project", map[string]any{
		"name":       "Mobile App",
		"start_date": "2024-05-01",
	}, &created)
	require.Equal(t, "project5", created.ID)
	require.Equal(t, "client1", created.ClientID)
	require.Equal(t, "planning", created.Status)

	ws := ts.Store.CurrentWorkspace()
	require.Equal(t, []string{"project1", "project2", "project5"}, ws.ProjectIDs)

	var added mcp.AddClientResponse
	ts.MustCall(t, "add_client", map[string]any{
		"name":  "Initech",
		"email": "hello@initech.com",
	}, &added)
	require.Equal(t, "client4", added.Client.ID)
	require.Equal(t, "workspace4", added.Workspace.ID)
	require.Empty(t, added.Workspace.ProjectIDs)
	require.Len(t, added.Workspace.Members, 1)
	require.Equal(t, "user1", added.Workspace.Members[0].ID)
	require.Equal(t, fixedClock(), added.Client.CreatedAt)

	ts.MustCall(t, "get_state", nil, &state)
	require.Equal(t, "client4", state.CurrentClient.ID)
	require.Empty(t, state.VisibleProjects)

	var projects []struct {
		ID string `json:"id"`
	}
	ts.MustCall(t, "get_projects_by_client", map[string]any{"client_id": "client1"}, &projects)
	require.Len(t, projects, 3)
}

func TestServer_ToolErrors(t *testing.T) {
	ts := testserver.New(t)

	cases := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{"unknown client", "select_client", map[string]any{"client_id": "client99"}, "CLIENT_NOT_FOUND"},
		{"no selection", "add_project", map[string]any{"name": "Orphan"}, "NO_CLIENT_SELECTED"},
		{"bad status", "add_client", map[string]any{"name": "X", "email": "x@x.com", "status": "archived"}, "INVALID_INPUT"},
		{"wrong password", "login", map[string]any{"email": "jane.smith@techcorp.com", "password": "secret"}, "INVALID_CREDENTIALS"},
		{"password mismatch", "register", map[string]any{"email": "a@b.c", "password": "a", "confirm_password": "b"}, "PASSWORD_MISMATCH"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, isError := ts.Call(t, tc.tool, tc.args)
			require.True(t, isError)

			var apiErr mcp.APIError
			require.NoError(t, json.Unmarshal(payload, &apiErr))
			require.Equal(t, tc.code, apiErr.Code)
			require.NotEmpty(t, apiErr.RecoveryHint)
		})
	}

	require.Nil(t, ts.Store.CurrentClient())
	require.Len(t, ts.Store.Clients(), 3)
}

func TestServer_LoginSwitchesMembership(t *testing.T) {
	ts := testserver.New(t)

	var u struct {
		ID string `json:"id"`
	}
	ts.MustCall(t, "login", map[string]any{"email": "John.Davis@techcorp.com", "password": "password"}, &u)
	require.Equal(t, "user2", u.ID)

	var added mcp.AddClientResponse
	ts.MustCall(t, "add_client", map[string]any{"name": "Umbrella", "email": "info@umbrella.com"}, &added)
	require.Equal(t, "user2", added.Workspace.Members[0].ID)

	ts.MustCall(t, "logout", nil, nil)
	require.Nil(t, ts.Store.CurrentUser())

	ts.MustCall(t, "add_client", map[string]any{"name": "Cyberdyne", "email": "info@cyberdyne.com"}, &added)
	require.Empty(t, added.Workspace.Members)
}

func TestServer_Dashboard(t *testing.T) {
	ts := testserver.New(t)

	var summary struct {
		TotalClients  int `json:"total_clients"`
		TotalProjects int `json:"total_projects"`
	}
	ts.MustCall(t, "get_dashboard", nil, &summary)
	require.Equal(t, 3, summary.TotalClients)
	require.Equal(t, 4, summary.TotalProjects)
}

func TestServer_DocResources(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()

	for _, uri := range []string{"nexus://docs/overview", "nexus://docs/errors"} {
		res, err := ts.Session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: uri})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		require.Equal(t, "text/markdown", res.Contents[0].MIMEType)
		require.NotEmpty(t, res.Contents[0].Text)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServer_TrafficLogging(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ts := testserver.NewWithLogger(t, logger)

	ts.MustCall(t, "select_client", map[string]any{"client_id": "client3"}, nil)

	out := logs.String()
	require.Contains(t, out, "mcp traffic")
	require.Contains(t, out, "direction=inbound")
	require.Contains(t, out, "method=tools/call")
	require.Contains(t, out, "client3")
}
