package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"MediTrack/cache"
	"MediTrack/database"
	"MediTrack/middlewares"
	"MediTrack/routes"
	"MediTrack/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer := utils.SetupLogger(cfg)
	defer closer.Close()

	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
	}

	if err := database.InitializeRedis(cfg.RedisURL); err != nil {
		return err
	}
	defer database.RedisClient.Close()

	c, err := cache.NewCache()
	if err != nil {
		return err
	}

	tokens, err := utils.NewTokenMaker(cfg.SymmetricKey, cfg.TokenTTL)
	if err != nil {
		return err
	}

	handler, err := routes.SetupRoutes(routes.Dependencies{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   database.RedisClient,
		Cache:   c,
		Tokens:  tokens,
		Metrics: middlewares.NewMetrics(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()
	logger.Info().Msg("server exited gracefully")
	return nil
}
