package airquality

import (
	"context"
	"net/url"
	"time"

	"mobisync/internal/domain/job"
	"mobisync/internal/upstream"
)

const dailySummaryPath = "/api/v1/daily-summary"

type Source interface {
	// DailySummary nil без ошибки, если данных по городу нет
	DailySummary(ctx context.Context, cityCode string, date time.Time) (*DailySummary, error)
}

type Upstream struct {
	client upstream.Getter
}

func NewUpstream(client upstream.Getter) *Upstream {
	return &Upstream{client: client}
}

func (u *Upstream) DailySummary(ctx context.Context, cityCode string, date time.Time) (*DailySummary, error) {
	q := url.Values{}
	q.Set("city", cityCode)
	q.Set("date", date.Format(job.DateLayout))

	var d *DailySummary
	if err := u.client.Get(ctx, dailySummaryPath, q, &d); err != nil {
		if upstream.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if !d.HasData() {
		return nil, nil
	}
	return d, nil
}
