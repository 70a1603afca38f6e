package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rpggio/workspace-nexus/internal/domain/client"
	"github.com/rpggio/workspace-nexus/internal/printer"
	"github.com/spf13/cobra"
)

func newClientsCmd(flags *globalFlags) *cobra.Command {
	var (
		search  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients",
		Long:  `List clients in creation order, optionally filtered by a name or email substring.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			clients := a.store.SearchClients(search)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), clients)
			}

			counts := make(map[string]int, len(clients))
			for _, c := range clients {
				counts[c.ID] = len(a.store.ProjectsByClient(c.ID))
			}
			outputClientTable(cmd.OutOrStdout(), clients, counts)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or email (case-insensitive)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}

func outputClientTable(w io.Writer, clients []client.Client, projectCounts map[string]int) {
	p := printer.New(w)
	if len(clients) == 0 {
		p.Warning("No clients found\n")
		return
	}

	fmt.Fprintf(w, "%-38s %-24s %-28s %-10s %-8s %s\n", "ID", "NAME", "EMAIL", "CREATED", "PROJECTS", "STATUS")
	for _, c := range clients {
		fmt.Fprintf(w, "%-38s %-24s %-28s %-10s %-8d %s\n",
			c.ID, truncate(c.Name, 24), truncate(c.Email, 28),
			c.CreatedAt.Format("2006-01-02"), projectCounts[c.ID],
			printer.ClientStatus(c.Status))
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
