package stats

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
	Limit int
}

type Report struct {
	job.Result
	Date string `json:"date"`
}

type Servicer interface {
	Sync(ctx context.Context, p Params) (Report, error)
}

type Service struct {
	source       Source
	store        job.Store
	log          *slog.Logger
	defaultLimit int
	today        func() time.Time
}

func NewService(source Source, store job.Store, defaultLimit int, log *slog.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLeaderboardLimit
	}
	return &Service{
		source:       source,
		store:        store,
		log:          log.With(slog.String("component", "stats_sync")),
		defaultLimit: defaultLimit,
		today:        job.Today,
	}
}

// Sync параллельно запрашивает глобальную статистику и лидерборд,
// дожидается обоих ответов и пишет каждый домен независимо.
func (s *Service) Sync(ctx context.Context, p Params) (Report, error) {
	limit := p.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 1 || limit > MaxLeaderboardLimit {
		return Report{}, fmt.Errorf("%w: limit must be between 1 and %d", job.ErrInvalidParams, MaxLeaderboardLimit)
	}

	runID := job.NewRunID()
	log := s.log.With(slog.String("run_id", runID))
	today := s.today()

	var (
		global              Global
		entries             []Entry
		globalErr, boardErr error
	)

	// ошибки хранятся по доменам: сбой одного запроса не отменяет другой
	var g errgroup.Group
	g.Go(func() error {
		global, globalErr = s.source.Global(ctx)
		return nil
	})
	g.Go(func() error {
		entries, boardErr = s.source.Leaderboard(ctx, limit)
		return nil
	})
	_ = g.Wait()

	agg := job.NewAggregator()
	day := DailyStat{}

	if globalErr != nil {
		log.Error("fetch global stats", slog.String("error", globalErr.Error()))
		agg.Add(job.Failed(DailyDomain, 0, fmt.Errorf("fetch global stats: %w", globalErr)))
	} else {
		day = TransformGlobal(global, today)
		agg.Add(job.Write(ctx, s.store, DailyDomain, DailyTable, []batch.Row{day}))
	}

	if boardErr != nil {
		log.Error("fetch leaderboard", slog.String("error", boardErr.Error()))
		agg.Add(job.Failed(LeaderboardDomain, 0, fmt.Errorf("fetch leaderboard: %w", boardErr)))
	} else {
		rows := TransformLeaderboard(entries)
		agg.Add(job.Write(ctx, s.store, LeaderboardDomain, LeaderboardTable, batch.Rows(rows)))
	}

	res := agg.Result(runID)
	log.Info("stats sync finished",
		slog.Bool("success", res.Success),
		slog.Int("daily_stats", res.Synced[DailyDomain]),
		slog.Int("leaderboard", res.Synced[LeaderboardDomain]),
	)

	date := job.Day(today)
	if !day.Date.IsZero() {
		date = day.Date
	}
	return Report{Result: res, Date: date.Format(job.DateLayout)}, nil
}
