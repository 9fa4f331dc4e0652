package companies

import (
	"context"
	"fmt"

	"mobisync/internal/batch"
	"mobisync/internal/domain/job"
	"mobisync/internal/upstream"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

type Report struct {
	job.Result
	// Shapes форма ответа каждого домена: array, wrapped, unknown
	Shapes map[string]string `json:"shapes,omitempty"`
}

type Servicer interface {
	Sync(ctx context.Context) (Report, error)
}

type Service struct {
	source Source
	store  job.Store
	log    *slog.Logger
}

func NewService(source Source, store job.Store, log *slog.Logger) *Service {
	return &Service{
		source: source,
		store:  store,
		log:    log.With(slog.String("component", "companies_sync")),
	}
}

func (s *Service) Sync(ctx context.Context) (Report, error) {
	runID := job.NewRunID()
	log := s.log.With(slog.String("run_id", runID))

	var (
		companies              upstream.Listing[Company]
		facilities             upstream.Listing[Facility]
		companyErr, facilityErr error
	)

	// ошибки хранятся по доменам: сбой одного запроса не отменяет другой
	var g errgroup.Group
	g.Go(func() error {
		companies, companyErr = s.source.Companies(ctx)
		return nil
	})
	g.Go(func() error {
		facilities, facilityErr = s.source.Facilities(ctx)
		return nil
	})
	_ = g.Wait()

	agg := job.NewAggregator()
	shapes := make(map[string]string, 2)

	if companyErr != nil {
		log.Error("fetch companies", slog.String("error", companyErr.Error()))
		agg.Add(job.Failed(CompaniesDomain, 0, fmt.Errorf("fetch companies: %w", companyErr)))
	} else {
		shapes[CompaniesDomain] = companies.Shape.String()
		s.warnUnknown(log, CompaniesDomain, companies.Shape)
		rows := TransformCompanies(companies.Records)
		agg.Add(job.Write(ctx, s.store, CompaniesDomain, CompanyTable, batch.Rows(rows)))
	}

	if facilityErr != nil {
		log.Error("fetch facilities", slog.String("error", facilityErr.Error()))
		agg.Add(job.Failed(FacilitiesDomain, 0, fmt.Errorf("fetch facilities: %w", facilityErr)))
	} else {
		shapes[FacilitiesDomain] = facilities.Shape.String()
		s.warnUnknown(log, FacilitiesDomain, facilities.Shape)
		rows := TransformFacilities(facilities.Records)
		agg.Add(job.Write(ctx, s.store, FacilitiesDomain, FacilityTable, batch.Rows(rows)))
	}

	res := agg.Result(runID)
	log.Info("companies sync finished",
		slog.Bool("success", res.Success),
		slog.Int("companies", res.Synced[CompaniesDomain]),
		slog.Int("facilities", res.Synced[FacilitiesDomain]),
	)

	return Report{Result: res, Shapes: shapes}, nil
}

func (s *Service) warnUnknown(log *slog.Logger, domain string, shape upstream.Shape) {
	if shape != upstream.ShapeUnknown {
		return
	}
	log.Warn("unrecognized response shape, nothing to sync", slog.String("domain", domain))
}
