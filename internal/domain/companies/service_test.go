package companies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mobisync/internal/testutil"
	"mobisync/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// newUpstreamService поднимает upstream с заданными телами для companies и facilities
func newUpstreamService(t *testing.T, companies, facilities string, facilitiesStatus int) (*Service, *testutil.FakeStore) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/companies":
			_, _ = w.Write([]byte(companies))
		case "/api/v1/facilities":
			if facilitiesStatus != 0 {
				w.WriteHeader(facilitiesStatus)
				return
			}
			_, _ = w.Write([]byte(facilities))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := upstream.New(upstream.Config{
		Name:    "trip-backend",
		BaseURL: srv.URL,
		Retry:   upstream.RetryPolicy{Attempts: 1},
	}, slog.Default())
	require.NoError(t, err)

	store := testutil.NewFakeStore()
	return NewService(NewUpstream(c), store, slog.Default()), store
}

func TestService_Sync_ResponseShapes(t *testing.T) {
	tests := []struct {
		name           string
		companies      string
		facilities     string
		wantCompanies  int
		wantFacilities int
		wantShapes     map[string]string
	}{
		{
			name:           "bare arrays",
			companies:      `[{"id":1},{"id":2}]`,
			facilities:     `[{"id":10}]`,
			wantCompanies:  2,
			wantFacilities: 1,
			wantShapes:     map[string]string{"companies": "array", "facilities": "array"},
		},
		{
			name:           "wrapped objects",
			companies:      `{"companies":[{"id":1}],"total":1}`,
			facilities:     `{"data":[{"id":10},{"id":11}]}`,
			wantCompanies:  1,
			wantFacilities: 2,
			wantShapes:     map[string]string{"companies": "wrapped", "facilities": "wrapped"},
		},
		{
			name:           "unknown shape is zero records",
			companies:      `{"results":{"list":[]}}`,
			facilities:     `{"items":[{"id":10}]}`,
			wantCompanies:  0,
			wantFacilities: 1,
			wantShapes:     map[string]string{"companies": "unknown", "facilities": "wrapped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newUpstreamService(t, tt.companies, tt.facilities, 0)

			rep, err := svc.Sync(context.Background())

			require.NoError(t, err)
			assert.True(t, rep.Success)
			assert.Equal(t, tt.wantCompanies, rep.Synced[CompaniesDomain])
			assert.Equal(t, tt.wantFacilities, rep.Synced[FacilitiesDomain])
			assert.Equal(t, tt.wantShapes, rep.Shapes)
			assert.Len(t, store.Table(CompanyTable.Name), tt.wantCompanies)
		})
	}
}

func TestService_Sync_FacilitiesFailIsolated(t *testing.T) {
	svc, store := newUpstreamService(t, `[{"id":1},{"id":2},{"id":3}]`, "", http.StatusInternalServerError)

	rep, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Equal(t, map[string]int{CompaniesDomain: 3, FacilitiesDomain: 0}, rep.Synced)
	assert.Contains(t, rep.Errors, FacilitiesDomain)
	assert.Equal(t, "sync failed for facilities", rep.Error)
	assert.Equal(t, http.StatusBadGateway, rep.StatusCode())
	assert.Len(t, store.Table(CompanyTable.Name), 3)
	assert.Empty(t, store.Table(FacilityTable.Name))
}

func TestService_Sync_MalformedJSON(t *testing.T) {
	svc, _ := newUpstreamService(t, `{"companies":[`, `[]`, 0)

	rep, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Contains(t, rep.Errors, CompaniesDomain)
	assert.Equal(t, http.StatusBadGateway, rep.StatusCode())
}

// orderedSource отдает facilities с ошибкой, а companies отвечает только после этого
type orderedSource struct {
	facilitiesDone chan struct{}
}

func (s *orderedSource) Companies(ctx context.Context) (upstream.Listing[Company], error) {
	<-s.facilitiesDone
	if err := ctx.Err(); err != nil {
		return upstream.Listing[Company]{}, err
	}
	return upstream.Listing[Company]{
		Shape:   upstream.ShapeArray,
		Records: []Company{{ID: "1"}, {ID: "2"}},
	}, nil
}

func (s *orderedSource) Facilities(_ context.Context) (upstream.Listing[Facility], error) {
	defer close(s.facilitiesDone)
	return upstream.Listing[Facility]{}, &upstream.StatusError{StatusCode: http.StatusBadGateway}
}

func TestService_Sync_FacilitiesFailureDoesNotCancelCompanies(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := NewService(&orderedSource{facilitiesDone: make(chan struct{})}, store, slog.Default())

	rep, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, rep.Synced[CompaniesDomain])
	assert.Contains(t, rep.Errors, FacilitiesDomain)
	assert.Len(t, store.Table(CompanyTable.Name), 2)
}
