package commands

import (
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags override the loaded configuration for a single run.
type globalFlags struct {
	configPath string
	seedSource string
	seedPath   string
	idScheme   string
	user       string
	logLevel   string
}

// NewRootCmd builds the nexus command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "nexus",
		Short: "Workspace Nexus - client, workspace and project store",
		Long: `Workspace Nexus keeps an agency's clients, their workspaces and projects
in one consistent in-memory store, loaded from built-in fixtures, a YAML file
or a SQLite database.

Run "nexus serve" to expose the store to MCP clients over stdio.`,
		Version: versionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML config file (default $NEXUS_CONFIG_PATH)")
	pf.StringVar(&flags.seedSource, "seed-source", "", "seed source: builtin, yaml or sqlite")
	pf.StringVar(&flags.seedPath, "seed-path", "", "seed file or database path")
	pf.StringVar(&flags.idScheme, "id-scheme", "", "id scheme for new records: sequence or uuid")
	pf.StringVar(&flags.user, "user", "", "sign in as this user id or email")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newServeCmd(flags),
		newClientsCmd(flags),
		newProjectsCmd(flags),
		newDashboardCmd(flags),
		newSeedCmd(flags),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		_ = printer.New(root.ErrOrStderr()).Error(fmt.Sprintf("Error: %v", err), "",
			fmt.Sprintf("Run '%s --help' for usage.", root.Name()))
		return err
	}
	return nil
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
