package job

import (
	"context"

	"mobisync/internal/app/server/api/http/apierr"
	"mobisync/internal/domain/airquality"
	"mobisync/internal/domain/companies"
	"mobisync/internal/domain/routes"
	"mobisync/internal/domain/safety"
	"mobisync/internal/domain/stats"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Services сервисы задач синхронизации
type Services struct {
	Routes     routes.Servicer
	Stats      stats.Servicer
	Companies  companies.Servicer
	AirQuality airquality.Servicer
	Safety     safety.Servicer
}

type Handler struct {
	services   Services
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(services Services, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		services:   services,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.routesOp(), h.syncRoutes)
	huma.Register(api, h.statsOp(), h.syncStats)
	huma.Register(api, h.companiesOp(), h.syncCompanies)
	huma.Register(api, h.airQualityOp(), h.syncAirQuality)
	huma.Register(api, h.safetyOp(), h.syncSafety)
}

func (h *Handler) syncRoutes(ctx context.Context, in *routesInput) (*routesOutput, error) {
	rep, err := h.services.Routes.Sync(ctx, routes.Params{
		Start:   in.Start,
		End:     in.End,
		Days:    in.Days,
		PerPage: in.PerPage,
	})
	if err != nil {
		return nil, apierr.FromJob(err)
	}
	return &routesOutput{Status: rep.StatusCode(), Body: routesResponse{rep}}, nil
}

func (h *Handler) syncStats(ctx context.Context, in *statsInput) (*statsOutput, error) {
	rep, err := h.services.Stats.Sync(ctx, stats.Params{Limit: in.Limit})
	if err != nil {
		return nil, apierr.FromJob(err)
	}
	return &statsOutput{Status: rep.StatusCode(), Body: statsResponse{rep}}, nil
}

func (h *Handler) syncCompanies(ctx context.Context, _ *struct{}) (*companiesOutput, error) {
	rep, err := h.services.Companies.Sync(ctx)
	if err != nil {
		return nil, apierr.FromJob(err)
	}
	return &companiesOutput{Status: rep.StatusCode(), Body: companiesResponse{rep}}, nil
}

func (h *Handler) syncAirQuality(ctx context.Context, in *airQualityInput) (*airQualityOutput, error) {
	rep, err := h.services.AirQuality.Sync(ctx, airquality.Params{Date: in.Date})
	if err != nil {
		return nil, apierr.FromJob(err)
	}
	return &airQualityOutput{Status: rep.StatusCode(), Body: airQualityResponse{rep}}, nil
}

// syncSafety разбирает тело вручную: ошибки проверки payload отдаются как 400 с {"error"}
func (h *Handler) syncSafety(ctx context.Context, in *safetyInput) (*safetyOutput, error) {
	payload, err := safety.DecodePayload(in.RawBody)
	if err != nil {
		return nil, apierr.FromJob(err)
	}

	rep, err := h.services.Safety.Submit(ctx, payload)
	if err != nil {
		return nil, apierr.FromJob(err)
	}
	return &safetyOutput{Status: rep.StatusCode(), Body: safetyResponse{rep}}, nil
}
