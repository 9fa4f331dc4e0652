package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mobisync/internal/app/server/api"
	jobAPI "mobisync/internal/app/server/api/http/job"
	"mobisync/internal/app/server/config"
	"mobisync/internal/batch"
	"mobisync/internal/domain/airquality"
	"mobisync/internal/domain/companies"
	"mobisync/internal/domain/routes"
	"mobisync/internal/domain/safety"
	"mobisync/internal/domain/stats"
	"mobisync/internal/infrastructure/storage"
	"mobisync/internal/upstream"

	"golang.org/x/exp/slog"
)

// App сервер задач синхронизации со всеми зависимостями
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage storage.Storage
	server  *http.Server
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg.Sync.Secret == "" {
		log.Warn("SYNC_SECRET is empty, every job request will be rejected")
	}

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	services, err := buildServices(cfg, st, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	router := api.New(st, services, cfg.Sync.Secret, log)

	return &App{
		cfg:     cfg,
		log:     log,
		storage: st,
		server: &http.Server{
			Addr:         cfg.Server.RunAddress,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

func buildServices(cfg *config.Config, st storage.Storage, log *slog.Logger) (jobAPI.Services, error) {
	retry := upstream.DefaultRetry
	retry.Attempts = cfg.Upstream.RetryAttempts

	activity, err := upstream.New(upstream.Config{
		Name:    "trip-backend",
		BaseURL: cfg.Activity.URL,
		Token:   cfg.Activity.Token,
		Timeout: cfg.Upstream.Timeout,
		RPS:     cfg.Activity.RPS,
		Retry:   retry,
	}, log)
	if err != nil {
		return jobAPI.Services{}, fmt.Errorf("activity upstream: %w", err)
	}

	airQuality, err := upstream.New(upstream.Config{
		Name:    "air-quality",
		BaseURL: cfg.AirQuality.URL,
		APIKey:  cfg.AirQuality.APIKey,
		Timeout: cfg.Upstream.Timeout,
		RPS:     cfg.AirQuality.RPS,
		Retry:   retry,
	}, log)
	if err != nil {
		return jobAPI.Services{}, fmt.Errorf("air quality upstream: %w", err)
	}
	if len(cfg.AirQuality.Cities) == 0 {
		log.Warn("no air quality cities configured")
	}

	upserter := batch.NewUpserter(st, cfg.Sync.BatchSize, log)

	return jobAPI.Services{
		Routes:     routes.NewService(routes.NewUpstream(activity), upserter, log),
		Stats:      stats.NewService(stats.NewUpstream(activity), upserter, cfg.Sync.LeaderboardLimit, log),
		Companies:  companies.NewService(companies.NewUpstream(activity), upserter, log),
		AirQuality: airquality.NewService(airquality.NewUpstream(airQuality), upserter, cfg.AirQuality.Cities, log),
		Safety:     safety.NewService(upserter, log),
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем дожидается текущих задач
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", slog.String("address", a.server.Addr), slog.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = a.storage.Close()
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if cerr := a.storage.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

func (a *App) shutdownTimeout() time.Duration {
	if a.cfg.Server.ShutdownTimeout > 0 {
		return a.cfg.Server.ShutdownTimeout
	}
	return 30 * time.Second
}
