package companies

import (
	"context"

	"mobisync/internal/upstream"
)

const (
	companiesPath  = "/api/v1/companies"
	facilitiesPath = "/api/v1/facilities"
)

// Source отдает разобранный ответ вместе с его формой, чтобы сервис мог
// отличить пустой список от неизвестного контракта.
type Source interface {
	Companies(ctx context.Context) (upstream.Listing[Company], error)
	Facilities(ctx context.Context) (upstream.Listing[Facility], error)
}

type Upstream struct {
	client upstream.Getter
}

func NewUpstream(client upstream.Getter) *Upstream {
	return &Upstream{client: client}
}

func (u *Upstream) Companies(ctx context.Context) (upstream.Listing[Company], error) {
	return fetchListing[Company](ctx, u.client, companiesPath, companyKeys)
}

func (u *Upstream) Facilities(ctx context.Context) (upstream.Listing[Facility], error) {
	return fetchListing[Facility](ctx, u.client, facilitiesPath, facilityKeys)
}

func fetchListing[T any](ctx context.Context, c upstream.Getter, path string, keys []string) (upstream.Listing[T], error) {
	raw, err := c.GetRaw(ctx, path, nil)
	if err != nil {
		return upstream.Listing[T]{}, err
	}
	return upstream.DecodeListing[T](raw, keys...)
}
