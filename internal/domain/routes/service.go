package routes

import (
	"context"
	"fmt"
	"time"

	"mobisync/internal/batch"
	"mobisync/internal/domain/job"
	"mobisync/internal/upstream"

	"golang.org/x/exp/slog"
)

// Params параметры запуска. Пустые значения означают политику по умолчанию.
type Params struct {
	Start   string
	End     string
	Days    int
	PerPage int
}

// Report ответ задачи синхронизации маршрутов
type Report struct {
	job.Result
	DateRange    job.DateRange `json:"date_range"`
	PagesFetched int           `json:"pages_fetched"`
	TotalCount   int           `json:"total_count"`
}

type Servicer interface {
	Sync(ctx context.Context, p Params) (Report, error)
}

type Service struct {
	source   Source
	store    job.Store
	log      *slog.Logger
	maxPages int
	today    func() time.Time
	now      func() time.Time
}

func NewService(source Source, store job.Store, log *slog.Logger) *Service {
	return &Service{
		source:   source,
		store:    store,
		log:      log.With(slog.String("component", "routes_sync")),
		maxPages: upstream.DefaultMaxPages,
		today:    job.Today,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sync выгружает активности за окно постранично и пишет их в activity_routes.
// Ошибка возвращается только для неверных параметров, сбои домена попадают в Report.
func (s *Service) Sync(ctx context.Context, p Params) (Report, error) {
	w, err := job.ResolveWindow(s.today(), p.Start, p.End, p.Days)
	if err != nil {
		return Report{}, err
	}

	perPage := p.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		return Report{}, fmt.Errorf("%w: per_page must be between 1 and %d", job.ErrInvalidParams, MaxPerPage)
	}

	runID := job.NewRunID()
	log := s.log.With(slog.String("run_id", runID))
	log.Info("routes sync started",
		slog.String("start", w.Range().Start),
		slog.String("end", w.Range().End),
		slog.Int("per_page", perPage),
	)

	fetch := func(ctx context.Context, page, perPage int) (upstream.Page[Activity], error) {
		return s.source.FetchPage(ctx, w, page, perPage)
	}

	agg := job.NewAggregator()
	fetched, err := upstream.FetchAll(ctx, fetch, perPage, s.maxPages, s.now)
	if err != nil {
		log.Error("fetch activities", slog.Int("pages", fetched.Pages), slog.String("error", err.Error()))
		agg.Add(job.Failed(Domain, 0, fmt.Errorf("fetch activities: %w", err)))
	} else {
		rows := TransformAll(fetched.Records)
		agg.Add(job.Write(ctx, s.store, Domain, Table, batch.Rows(rows)))
	}

	res := agg.Result(runID)
	log.Info("routes sync finished",
		slog.Bool("success", res.Success),
		slog.Int("pages", fetched.Pages),
		slog.Int("synced", res.Synced[Domain]),
	)

	return Report{
		Result:       res,
		DateRange:    w.Range(),
		PagesFetched: fetched.Pages,
		TotalCount:   fetched.TotalCount,
	}, nil
}
