package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/echoes/internal/api"
	"github.com/MikeSquared-Agency/echoes/internal/auth"
	"github.com/MikeSquared-Agency/echoes/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg := config.Load()
	logger := setupLogging(cfg.LogLevel, os.Stdout)

	logger.Info("echoes starting", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up pipeline", "error", err)
		return err
	}
	defer cleanup()

	gate, err := auth.NewGate(cfg.Username, cfg.Password, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logger.Error("failed to set up login gate", "error", err)
		return err
	}
	if !gate.Enabled() {
		logger.Warn("USERNAME/PASSWORD not set, every login will be refused")
	}
	if cfg.SessionSecret == "" {
		logger.Warn("ECHOES_SESSION_SECRET not set, sessions end on restart")
	}

	srv := api.NewServer(api.Options{
		Port:        cfg.Port,
		People:      people(cfg),
		CORSOrigins: cfg.CORSOrigins,
	}, p, gate, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("echoes ready", "port", cfg.Port, "zone", p.Zone().String())

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
	logger.Info("echoes stopped")
	return nil
}
