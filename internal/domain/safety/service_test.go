package safety

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"mobisync/internal/batch"
	"mobisync/internal/domain/job"
	"mobisync/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestService(store job.Store) *Service {
	s := NewService(store, slog.Default())
	s.today = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Submit(t *testing.T) {
	store := testutil.NewFakeStore()

	rep, err := newTestService(store).Submit(context.Background(), Payload{
		CityID:  "lis",
		Records: []Record{{Year: year(2023)}, {Year: year(2024)}},
	})

	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.Equal(t, 2, rep.Synced[Domain])
	assert.Equal(t, "lis", rep.CityID)
	assert.Equal(t, "manual", rep.Source)
	assert.Len(t, store.Table(Table.Name), 2)
}

func TestService_Submit_InvalidPayloadWritesNothing(t *testing.T) {
	store := new(testutil.MockStore)

	_, err := newTestService(store).Submit(context.Background(), Payload{CityID: "lis"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, job.StatusFor(err))
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Submit_StorageFailure(t *testing.T) {
	store := new(testutil.MockStore)
	store.On("Upsert", mock.Anything, Table, mock.Anything).
		Return(batch.Report{}, errors.Join(batch.ErrStorageWrite, errors.New("timeout")))

	rep, err := newTestService(store).Submit(context.Background(), Payload{
		CityID:  "lis",
		Records: []Record{{Year: year(2023)}},
	})

	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Equal(t, http.StatusInternalServerError, rep.StatusCode())
	store.AssertExpectations(t)
}
