package commands

import (
	"fmt"
	"io"

	"github.com/rpggio/workspace-nexus/internal/dashboard"
	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/printer"
	"github.com/spf13/cobra"
)

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	var (
		clientID string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show client and project totals",
		Long: `Dashboard prints totals across all clients, projects per status and the
most recently created clients. With --client, it also breaks down that
client's projects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if clientID != "" {
				if err := a.store.SelectClient(ctx, clientID); err != nil {
					return err
				}
			}
			summary := dashboard.Build(a.store.State())
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			outputDashboard(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "also show projects of this client")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}

func outputDashboard(w io.Writer, s dashboard.Summary) {
	p := printer.New(w)

	p.Heading("Clients")
	p.Info("  total %d, active %d\n", s.TotalClients, s.ActiveClients)

	p.Heading("Projects")
	p.Info("  total %d, active %d, completed %d\n", s.TotalProjects, s.ActiveProjects, s.CompletedProjects)
	for _, st := range project.Statuses {
		p.Info("  %-10s %3d  %5.1f%%\n", st, s.ProjectsByStatus[st], s.Share(st)*100)
	}

	if s.SelectedClientID != "" {
		p.Heading("Selected client %s", s.SelectedClientID)
		for _, st := range project.Statuses {
			p.Info("  %-10s %3d\n", st, s.VisibleByStatus[st])
		}
	}

	p.Heading("Recent clients")
	for _, c := range s.RecentClients {
		fmt.Fprintf(w, "  %-10s %-24s %2d projects  %s\n",
			c.CreatedAt.Format("2006-01-02"), truncate(c.Name, 24), c.ProjectCount,
			printer.ClientStatus(c.Status))
	}
}
