package commands

import (
	"fmt"

	"github.com/rpggio/workspace-nexus/internal/printer"
	"github.com/rpggio/workspace-nexus/internal/repository"
	"github.com/rpggio/workspace-nexus/internal/seed"
	"github.com/rpggio/workspace-nexus/internal/sqlite"
	"github.com/spf13/cobra"
)

const (
	formatYAML   = "yaml"
	formatSQLite = "sqlite"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSeedExportCmd(flags))
	return cmd
}

func newSeedExportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded seed to a YAML file or SQLite database",
		Long: `Export loads the configured seed, normalizes it the way the store does
(missing workspaces are created, workspace project lists are rebuilt) and
writes the result. An existing SQLite seed at the target is replaced.`,
		Example: `  nexus seed export --format yaml --out fixtures.yaml
  nexus --seed-source yaml --seed-path fixtures.yaml seed export --format sqlite --out nexus.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			target, closeTarget, err := openSeedTarget(format, out)
			if err != nil {
				return err
			}
			defer closeTarget()

			d := a.store.Export()
			if err := target.Save(ctx, d); err != nil {
				return fmt.Errorf("export seed: %w", err)
			}
			printer.New(cmd.OutOrStdout()).Success("Exported %d clients, %d projects to %s\n",
				len(d.Clients), len(d.Projects), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatYAML, "output format: yaml or sqlite")
	cmd.Flags().StringVar(&out, "out", "", "output file path")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func openSeedTarget(format, path string) (repository.SeedRepository, func() error, error) {
	switch format {
	case formatYAML:
		return seed.FileRepository{Path: path}, func() error { return nil }, nil
	case formatSQLite:
		db, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.NewSeedRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown format %q: want %s or %s", format, formatYAML, formatSQLite)
	}
}
