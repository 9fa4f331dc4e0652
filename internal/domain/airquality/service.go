package airquality

import (
	"context"
	"fmt"
	"time"

	"mobisync/internal/batch"
	"mobisync/internal/domain/job"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	Date string
}

type Report struct {
	job.Result
	Date   string              `json:"date"`
	Cities map[string]*Summary `json:"cities"`
}

type Servicer interface {
	Sync(ctx context.Context, p Params) (Report, error)
}

type Service struct {
	source      Source
	store       job.Store
	cities      []City
	concurrency int
	log         *slog.Logger
	today       func() time.Time
}

func NewService(source Source, store job.Store, cities []City, log *slog.Logger) *Service {
	return &Service{
		source:      source,
		store:       store,
		cities:      cities,
		concurrency: DefaultConcurrency,
		log:         log.With(slog.String("component", "air_quality_sync")),
		today:       job.Today,
	}
}

type cityResult struct {
	summary *DailySummary
	err     error
}

// Sync запрашивает сводку за день по всем городам параллельно.
// Сбой одного города попадает в errors под air_quality:<city> и не мешает остальным.
func (s *Service) Sync(ctx context.Context, p Params) (Report, error) {
	date := job.PreviousDay(s.today())
	if p.Date != "" {
		d, err := job.ParseDate(p.Date)
		if err != nil {
			return Report{}, err
		}
		date = d
	}

	runID := job.NewRunID()
	log := s.log.With(slog.String("run_id", runID), slog.String("date", date.Format(job.DateLayout)))

	results := make([]cityResult, len(s.cities))
	// ошибка города хранится в results и не отменяет запросы по остальным
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, c := range s.cities {
		g.Go(func() error {
			d, err := s.source.DailySummary(ctx, c.Code, date)
			results[i] = cityResult{summary: d, err: err}
			return nil
		})
	}
	_ = g.Wait()

	agg := job.NewAggregator()
	cities := make(map[string]*Summary, len(s.cities))
	rows := make([]Reading, 0, len(s.cities))

	for i, c := range s.cities {
		r := results[i]
		if r.err != nil {
			log.Error("fetch daily summary", slog.String("city", c.ID), slog.String("error", r.err.Error()))
			agg.Add(job.PartFailed(Domain+":"+c.ID, fmt.Errorf("fetch %s: %w", c.Code, r.err)))
			cities[c.ID] = nil
			continue
		}

		reading, ok := Transform(c.ID, date, r.summary)
		if !ok {
			log.Debug("no data for city", slog.String("city", c.ID))
			cities[c.ID] = nil
			continue
		}
		rows = append(rows, reading)
		cities[c.ID] = reading.Summary()
	}

	agg.Add(job.Write(ctx, s.store, Domain, Table, batch.Rows(rows)))

	res := agg.Result(runID)
	log.Info("air quality sync finished",
		slog.Bool("success", res.Success),
		slog.Int("cities", len(s.cities)),
		slog.Int("readings", res.Synced[Domain]),
	)

	return Report{
		Result: res,
		Date:   date.Format(job.DateLayout),
		Cities: cities,
	}, nil
}
