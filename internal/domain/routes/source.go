package routes

import (
	"context"
	"net/url"
	"strconv"

	"mobisync/internal/domain/job"
	"mobisync/internal/upstream"
)

const activitiesPath = "/api/v1/activities"

// Source источник страниц активностей
type Source interface {
	FetchPage(ctx context.Context, w job.Window, page, perPage int) (upstream.Page[Activity], error)
}

// Upstream Source поверх trip backend
type Upstream struct {
	client upstream.Getter
}

func NewUpstream(client upstream.Getter) *Upstream {
	return &Upstream{client: client}
}

func (u *Upstream) FetchPage(ctx context.Context, w job.Window, page, perPage int) (upstream.Page[Activity], error) {
	q := url.Values{}
	q.Set("start_date", w.Start.Format(job.DateLayout))
	q.Set("end_date", w.End.Format(job.DateLayout))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var p activityPage
	if err := u.client.Get(ctx, activitiesPath, q, &p); err != nil {
		return upstream.Page[Activity]{}, err
	}
	return p.toPage(), nil
}
