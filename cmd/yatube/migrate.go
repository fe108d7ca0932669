package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"yatube/config"
	pgstore "yatube/internal/adapter/out/storage/postgres"
	"yatube/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StorageType != config.StoragePostgres {
			logger.FromContext(ctx).Info("nothing to migrate", "storage", cfg.StorageType)
			return nil
		}

		pool, err := pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return fmt.Errorf("pgxpool: %w", err)
		}
		defer pool.Close()

		return pgstore.Migrate(ctx, pool)
	},
}
