package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sir_venger/filekeeper/internal/config"
	"github.com/sir_venger/filekeeper/internal/repo/meta"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres record store schema",
	Long: `Apply, roll back or inspect goose migrations of the record store.

The DSN is taken from the service configuration (CONFIG_PATH, META_DSN).
Non-Postgres record stores need no migrations and are skipped.

Examples:
  META_DSN=postgres://u:p@localhost:5432/files migrate up
  migrate status --timeout 10s`,
	SilenceUsage: true,
}

func migrateCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.SetupLogger(cfg)

			if !meta.IsPostgres(cfg.MetaDSN) {
				logger.Info("record store is not postgres, skipping migrations")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := meta.RunMigrations(ctx, cfg.MetaDSN, command); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}
			logger.Info("migrations finished", "command", command)
			return nil
		},
	}
}

func main() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "migration timeout")
	rootCmd.AddCommand(
		migrateCmd(meta.MigrateUp, "Apply all pending migrations"),
		migrateCmd(meta.MigrateDown, "Roll back the latest migration"),
		migrateCmd(meta.MigrateStatus, "Print migration status"),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
