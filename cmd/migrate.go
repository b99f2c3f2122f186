package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bet_tracker/internal/db"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the accounts and wagers tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, gdb, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer func() { _ = db.Close(gdb) }()

			log.Info("migration complete", zap.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
