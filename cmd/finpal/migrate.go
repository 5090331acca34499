package main

import (
	"finpal/pkg/logger"
	"finpal/pkg/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, appLogger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return postgres.RunMigrations(&cfg.Database, appLogger)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, appLogger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return postgres.RollbackMigrations(&cfg.Database, steps, appLogger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}
