package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/RetiredDemiurge/love-letter/cmd/loveletter/shared"
	"github.com/RetiredDemiurge/love-letter/internal/server"
)

// ServeCmd runs the multiplayer websocket server.
type ServeCmd struct {
	Config string `kong:"default='loveletter.hcl',help='Path to HCL configuration file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for the session registry (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Sessions.Seed = c.Seed
	}

	levelName := cfg.Server.LogLevel
	if c.Debug {
		levelName = "debug"
	}
	logger := shared.SetupLoggerWithLevel(os.Stderr, levelName)

	addr := cfg.ListenAddr()
	if c.Addr != "" {
		addr = c.Addr
	}

	manager := server.NewManager(logger, quartz.NewReal(), cfg.Sessions, cfg.IdleTimeout())
	srv := server.NewServer(addr, manager, logger)

	logger.Info("Starting Love Letter server",
		"address", addr,
		"max_games", cfg.Sessions.MaxGames,
		"idle_timeout", cfg.IdleTimeout(),
	)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		manager.RunReaper(ctx, cfg.ReapInterval())
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return group.Wait()
}
