package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/logging"
	"github.com/horizons-app/horizons/internal/server"
	"github.com/horizons-app/horizons/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the account API (signup, login, healthz)",
	Long: `Serves the account API the app logs in against, backed by a SQLite
database. Listens on server.listen_addr until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewConsole(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	logger.Info("store opened", zap.String("path", cfg.Server.DBPath))

	opts := server.DefaultOptions()
	opts.Logger = logger
	return server.Run(ctx, cfg.Server.ListenAddr, server.NewRouter(st, opts), logger)
}
