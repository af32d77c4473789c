package main

import (
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the item catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := persistence.Open(persistence.DatabaseConfig{
				Driver:   cfg.DBDriver,
				DSN:      cfg.DBDSN,
				LogLevel: gormLogLevel(cfg.LogLevel),
			})
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err := persistence.Migrate(db); err != nil {
				return err
			}
			logger.Info("database migrated", "driver", cfg.DBDriver, "items", len(persistence.DefaultItems))
			return nil
		},
	}
}
