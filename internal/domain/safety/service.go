package safety

import (
	"context"
	"time"

	"mobisync/internal/batch"
	"mobisync/internal/domain/job"

	"golang.org/x/exp/slog"
)

type Report struct {
	job.Result
	CityID string `json:"city_id"`
	Source string `json:"source"`
}

type Servicer interface {
	Submit(ctx context.Context, p Payload) (Report, error)
}

type Service struct {
	store job.Store
	log   *slog.Logger
	today func() time.Time
}

func NewService(store job.Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With(slog.String("component", "safety_sync")),
		today: job.Today,
	}
}

// Submit проверяет payload и пишет годовые записи города.
// Ошибка возвращается только для невалидного payload.
func (s *Service) Submit(ctx context.Context, p Payload) (Report, error) {
	if err := Validate(p, s.today().Year()); err != nil {
		s.log.Warn("rejected safety payload", slog.String("error", err.Error()))
		return Report{}, err
	}

	runID := job.NewRunID()
	rows := Transform(p)

	agg := job.NewAggregator()
	agg.Add(job.Write(ctx, s.store, Domain, Table, batch.Rows(rows)))
	res := agg.Result(runID)

	s.log.Info("safety records submitted",
		slog.String("run_id", runID),
		slog.String("city_id", rows[0].CityID),
		slog.Int("records", len(rows)),
		slog.Bool("success", res.Success),
	)

	return Report{Result: res, CityID: rows[0].CityID, Source: rows[0].Source}, nil
}
