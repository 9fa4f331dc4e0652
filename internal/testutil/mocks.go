// Package testutil общие тестовые заглушки для доменных сервисов.
package testutil

import (
	"context"
	"sync"

	"mobisync/internal/batch"

	"github.com/stretchr/testify/mock"
)

// FakeStore запоминает строки по таблицам. Fail задает ошибку записи для таблицы.
type FakeStore struct {
	mu    sync.Mutex
	Rows  map[string][]batch.Row
	Fail  map[string]error
	Calls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Rows: make(map[string][]batch.Row),
		Fail: make(map[string]error),
	}
}

func (s *FakeStore) Upsert(_ context.Context, table batch.Table, rows []batch.Row) (batch.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if err := s.Fail[table.Name]; err != nil {
		return batch.Report{}, err
	}
	s.Rows[table.Name] = append(s.Rows[table.Name], rows...)
	return batch.Report{Written: len(rows), Batches: len(batch.Chunk(rows, batch.DefaultSize))}, nil
}

// Table строки таблицы
func (s *FakeStore) Table(name string) []batch.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Rows[name]
}

// MockStore мок job.Store на testify
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, table batch.Table, rows []batch.Row) (batch.Report, error) {
	args := m.Called(ctx, table, rows)
	return args.Get(0).(batch.Report), args.Error(1)
}
