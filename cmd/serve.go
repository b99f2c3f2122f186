package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bet_tracker/internal/account"
	"bet_tracker/internal/db"
	"bet_tracker/internal/handler"
	"bet_tracker/internal/ledger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, gdb, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer func() { _ = db.Close(gdb) }()

			accounts := account.NewService(account.NewAccountRepository(gdb), log)
			def, err := accounts.EnsureDefault(ctx, cfg.Ledger)
			if err != nil {
				return err
			}
			log.Info("default account ready", zap.String("account_id", def.AccountID), zap.String("name", def.Name))

			if cfg.App.Env != "dev" {
				gin.SetMode(gin.ReleaseMode)
			}
			router := handler.NewRouter(handler.Deps{
				DB:              gdb,
				Accounts:        accounts,
				Store:           ledger.NewRepository(gdb),
				Log:             log,
				DefaultCurrency: cfg.Ledger.DefaultCurrency,
			})

			srv := &http.Server{
				Addr:              cfg.Server.HTTPAddr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info("server started", zap.String("addr", cfg.Server.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
