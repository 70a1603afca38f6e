package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/workspace-nexus/internal/domain/session"
	"github.com/rpggio/workspace-nexus/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the store to MCP clients over stdio",
		Long: `Serve runs an MCP server on stdin/stdout until stdin closes or the
process is interrupted. Logs go to stderr or the configured log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Store:    a.store,
					Sessions: session.NewService(a.store, a.store, a.logger),
				},
				Version: version,
				Logger:  a.logger,
			})

			a.logger.Info("starting stdio transport", "version", version)
			if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server: %w", err)
			}
			a.logger.Info("shutting down")
			return nil
		},
	}
}
