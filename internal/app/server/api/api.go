// GET  /api/v1/health             # Состояние сервиса (публичный)
// GET  /api/v1/sync/routes        # Маршруты активностей (auth)
// GET  /api/v1/sync/stats         # Глобальная статистика и лидерборд (auth)
// GET  /api/v1/sync/companies     # Компании и объекты (auth)
// GET  /api/v1/sync/air-quality   # Качество воздуха по городам (auth)
// POST /api/v1/sync/safety        # Годовая статистика аварийности (auth)

package api

import (
	"mobisync/internal/app/server/api/http/apierr"
	healthAPI "mobisync/internal/app/server/api/http/health"
	jobAPI "mobisync/internal/app/server/api/http/job"
	"mobisync/internal/app/server/api/http/middleware"
	"mobisync/internal/app/server/api/http/middleware/auth"
	"mobisync/internal/app/server/api/http/middleware/logger"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Job    *jobAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(db healthAPI.Pinger, services jobAPI.Services, secret string, log *slog.Logger) *chi.Mux {
	apierr.Setup()

	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.Recoverer)

	config := huma.DefaultConfig("mobisync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(db, services, secret, log)
	h.Health.SetupRoutes(API)
	h.Job.SetupRoutes(API)

	return mux
}

func handlers(db healthAPI.Pinger, services jobAPI.Services, secret string, log *slog.Logger) *Handlers {
	authMW := auth.New(secret, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(db, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	jobHandler := jobAPI.NewHandler(services, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Job:    jobHandler,
	}
}
