package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `workspace-nexus manages clients, their workspaces and projects for a small agency portal.

Core concepts:
- Client: an external organization. Creating one also creates its workspace.
- Workspace: one per client; lists the client's projects and team members.
- Project: belongs to exactly one client. New projects go to the selected client.
- Selection: the current client. Its workspace and projects are the current view.
- Current user: whoever signed in last; new workspaces start with them as the only member.

Default workflow:
1) Orient: call get_state (or get_dashboard for totals).
2) Pick a client: list_clients (optional query), then select_client.
3) Create: add_client selects the new client; add_project needs a selected client.
4) Inspect other clients without switching: get_projects_by_client, list_tasks.

Errors come back as tool errors carrying {code, message, recovery_hint}.

Docs:
- nexus://docs/overview
- nexus://docs/errors
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "nexus://docs/overview",
		Name:        "docs_overview",
		Title:       "workspace-nexus overview",
		Description: "Data model, invariants and the tool list.",
		Content: `# workspace-nexus

## Data model

| Entity | Notes |
|---|---|
| User | id, name, email, role (admin, developer, client), avatar |
| Client | id, name, email, phone, status (active, inactive), logo, created_at |
| Workspace | one per client; project_ids in creation order; members |
| Project | id, client_id, name, description, status (planning, active, on-hold, completed), dates |
| Task | read-only; belongs to a project |

## Guarantees

- Every project belongs to an existing client.
- Every client has exactly one workspace.
- A workspace's project_ids always equal its client's projects, oldest first.
- Ids are assigned by the server and never reused.
- A failed call changes nothing.

## Tools

- get_state, get_dashboard
- list_clients, select_client, add_client
- add_project, get_projects_by_client, list_tasks
- login, register, logout

Sign-in is a demo: any known email with the password "password" works, and register signs in as the first user.
`,
	},
	{
		URI:         "nexus://docs/errors",
		Name:        "docs_errors",
		Title:       "workspace-nexus error codes",
		Description: "Tool error codes and how to recover.",
		Content: `# Error codes

| Code | Meaning | Recovery |
|---|---|---|
| CLIENT_NOT_FOUND | select_client got an unknown id | list_clients |
| NO_CLIENT_SELECTED | add_project without a selection | select_client or add_client |
| INVALID_INPUT | bad status, date or argument shape | fix the argument |
| INVALID_CREDENTIALS | login email unknown or password wrong | check email |
| PASSWORD_MISMATCH | register passwords differ | resend |
| OPERATION_FAILED | unexpected failure; state unchanged | retry |
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
