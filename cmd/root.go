package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bet_tracker/internal/config"
	"bet_tracker/internal/db"
	"bet_tracker/internal/logger"
)

func Execute(ctx context.Context) error {
	var configPath string
	root := &cobra.Command{
		Use:          "bet-tracker",
		Short:        "Sports wager ledger service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to YAML config file")
	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	return root.ExecuteContext(ctx)
}

// bootstrap loads config, builds the logger and opens a migrated database.
func bootstrap(configPath string) (config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		_ = db.Close(gdb)
		return config.Config{}, nil, nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	return cfg, log, gdb, nil
}
