package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Orientation
		{
			Name:        "get_state",
			Description: "Get the signed-in user, the selected client with its workspace and projects, all clients, and the last error",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "get_dashboard",
			Description: "Get portal totals: clients, projects by status, and the most recently created clients",
			InputSchema: objectSchema(map[string]any{}),
		},

		// Clients
		{
			Name:        "list_clients",
			Description: "List clients in creation order, optionally filtered by a case-insensitive name or email substring",
			InputSchema: objectSchema(map[string]any{
				"query": stringProp("Substring to match against client name or email"),
			}),
		},
		{
			Name:        "select_client",
			Description: "Select a client; its workspace and projects become the current view",
			InputSchema: objectSchema(map[string]any{
				"client_id": stringProp("Client ID"),
			}, "client_id"),
		},
		{
			Name:        "add_client",
			Description: "Create a client together with its workspace and select it",
			InputSchema: objectSchema(map[string]any{
				"name":   stringProp("Client display name"),
				"email":  stringProp("Contact email"),
				"phone":  stringProp("Contact phone"),
				"status": enumProp("Client status (default active)", "active", "inactive"),
				"logo":   stringProp("Logo URL"),
			}, "name", "email"),
		},

		// Projects
		{
			Name:        "add_project",
			Description: "Create a project for the selected client",
			InputSchema: objectSchema(map[string]any{
				"name":        stringProp("Project name"),
				"description": stringProp("Project description"),
				"status":      enumProp("Project status (default planning)", "planning", "active", "on-hold", "completed"),
				"start_date":  stringProp("Start date, YYYY-MM-DD or RFC 3339"),
				"end_date":    stringProp("End date, YYYY-MM-DD or RFC 3339"),
			}, "name"),
		},
		{
			Name:        "get_projects_by_client",
			Description: "List the projects of any client without changing the selection",
			InputSchema: objectSchema(map[string]any{
				"client_id": stringProp("Client ID"),
			}, "client_id"),
		},
		{
			Name:        "list_tasks",
			Description: "List the tasks of a project",
			InputSchema: objectSchema(map[string]any{
				"project_id": stringProp("Project ID"),
			}, "project_id"),
		},

		// Session
		{
			Name:        "login",
			Description: "Sign in as an existing user by email",
			InputSchema: objectSchema(map[string]any{
				"email":    stringProp("User email"),
				"password": stringProp("Password"),
			}, "email", "password"),
		},
		{
			Name:        "register",
			Description: "Submit the sign-up form; the demo signs in as the first user",
			InputSchema: objectSchema(map[string]any{
				"name":             stringProp("Full name"),
				"email":            stringProp("Email"),
				"password":         stringProp("Password"),
				"confirm_password": stringProp("Password again"),
			}, "email", "password", "confirm_password"),
		},
		{
			Name:        "logout",
			Description: "Sign out the current user",
			InputSchema: objectSchema(map[string]any{}),
		},
	}
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	for _, def := range buildToolCatalog() {
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, toolHandler(h, def.Name))
	}
}

func toolHandler(h *Handler, name string) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		result, err := h.Handle(ctx, name, args)
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				apiErr = &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
			}
			return textResult(apiErr, true)
		}
		return textResult(result, false)
	}
}

func textResult(payload any, isError bool) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil
}
