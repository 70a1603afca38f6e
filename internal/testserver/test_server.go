package testserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/workspace-nexus/internal/domain/session"
	"github.com/rpggio/workspace-nexus/internal/mcp"
	"github.com/rpggio/workspace-nexus/internal/seed"
	"github.com/rpggio/workspace-nexus/internal/store"
	"github.com/stretchr/testify/require"
)

// TestServer is an MCP server over in-memory transports, backed by a store
// loaded from the built-in seed.
type TestServer struct {
	Store   *store.Store
	Session *sdkmcp.ClientSession
}

// New starts a server and connects a client to it. Both are closed when the
// test ends.
func New(t *testing.T, opts ...store.Option) *TestServer {
	t.Helper()
	return NewWithLogger(t, nil, opts...)
}

// NewWithLogger is New with a logger for the store, session service and
// server.
func NewWithLogger(t *testing.T, logger *slog.Logger, opts ...store.Option) *TestServer {
	t.Helper()

	ws, err := store.New(seed.Builtin(), logger, opts...)
	require.NoError(t, err)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Store:    ws,
			Sessions: session.NewService(ws, ws, logger),
		},
		Version: "test",
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Wait()
		cancel()
	})

	return &TestServer{Store: ws, Session: clientSession}
}

// Call invokes a tool and returns its text payload and error flag.
func (ts *TestServer) Call(t *testing.T, name string, args map[string]any) (json.RawMessage, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "tool %s returned no content", name)

	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(text.Text), result.IsError
		}
	}
	t.Fatalf("tool %s returned no text content", name)
	return nil, false
}

// MustCall invokes a tool, requires success and decodes the payload into out.
func (ts *TestServer) MustCall(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	payload, isError := ts.Call(t, name, args)
	require.False(t, isError, "tool %s returned error: %s", name, payload)
	if out != nil {
		require.NoError(t, json.Unmarshal(payload, out))
	}
}
