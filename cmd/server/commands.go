package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"singmeasong/internal/config"
	"singmeasong/internal/db"
	"singmeasong/internal/models"
	"singmeasong/internal/repository"
	"singmeasong/internal/router"
	"singmeasong/internal/services"
	"singmeasong/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			cfg.SetupLogger()

			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			return svc.Reset(context.Background())
		},
	}
}

func newService(cfg config.Config) (*services.RecommendationService, error) {
	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	topCache, err := utils.NewCache[[]models.Recommendation](64, cfg.TopCacheTTL)
	if err != nil {
		return nil, err
	}

	return services.NewRecommendationService(
		repository.NewGormRepository(conn),
		services.NewRandomSource(cfg.RandomSeed),
		topCache,
	), nil
}

func serve(parent context.Context) error {
	cfg := config.Load()
	cfg.SetupLogger()

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	r, err := router.New(cfg, svc)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env}).Info("Sing me a song server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
