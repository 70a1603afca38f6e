package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/rpggio/workspace-nexus/internal/domain/project"
	"github.com/rpggio/workspace-nexus/internal/printer"
	"github.com/spf13/cobra"
)

func newProjectsCmd(flags *globalFlags) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "projects <client-id>",
		Short: "List a client's projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.store.Client(args[0])
			if err != nil {
				return err
			}
			projects := a.store.ProjectsByClient(c.ID)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), projects)
			}

			w := cmd.OutOrStdout()
			printer.New(w).Heading("%s (%s)", c.Name, c.ID)
			outputProjectTable(w, projects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}

func outputProjectTable(w io.Writer, projects []project.Project) {
	if len(projects) == 0 {
		printer.New(w).Warning("No projects yet\n")
		return
	}

	fmt.Fprintf(w, "%-38s %-28s %-10s %-10s %s\n", "ID", "NAME", "START", "END", "STATUS")
	for _, p := range projects {
		fmt.Fprintf(w, "%-38s %-28s %-10s %-10s %s\n",
			p.ID, truncate(p.Name, 28), formatDate(p.StartDate), formatDate(p.EndDate),
			printer.ProjectStatus(p.Status))
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
