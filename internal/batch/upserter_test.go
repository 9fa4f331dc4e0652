package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type testRow struct {
	ID    *int
	Name  string
	Value int
}

func (r testRow) Values() []any {
	return []any{Nullable(r.ID), r.Name, r.Value}
}

var testTable = Table{
	Name:        "things",
	Columns:     []string{"id", "name", "value"},
	ConflictKey: []string{"id"},
}

type recordingWriter struct {
	batches [][][]any
	failAt  int // номер вызова (с 1), который вернет ошибку
}

func (w *recordingWriter) UpsertBatch(_ context.Context, _ Table, rows [][]any) error {
	if w.failAt > 0 && len(w.batches)+1 == w.failAt {
		return errors.New("connection reset")
	}
	w.batches = append(w.batches, rows)
	return nil
}

func makeRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		id := i + 1
		rows[i] = testRow{ID: &id, Name: "n", Value: i}
	}
	return rows
}

func TestUpserter_Chunking(t *testing.T) {
	tests := []struct {
		rows        int
		wantBatches int
	}{
		{rows: 0, wantBatches: 0},
		{rows: 1, wantBatches: 1},
		{rows: 499, wantBatches: 1},
		{rows: 500, wantBatches: 1},
		{rows: 501, wantBatches: 2},
		{rows: 1234, wantBatches: 3},
	}

	for _, tt := range tests {
		w := &recordingWriter{}
		u := NewUpserter(w, 0, slog.Default())

		rep, err := u.Upsert(context.Background(), testTable, makeRows(tt.rows))
		require.NoError(t, err)

		assert.Equal(t, tt.wantBatches, rep.Batches)
		assert.Equal(t, tt.rows, rep.Written)
		require.Len(t, w.batches, tt.wantBatches)

		seen := make(map[int]bool)
		for _, b := range w.batches {
			assert.LessOrEqual(t, len(b), DefaultSize)
			for _, row := range b {
				id := row[0].(int)
				assert.False(t, seen[id], "duplicate id %d", id)
				seen[id] = true
			}
		}
		assert.Len(t, seen, tt.rows)
	}
}

func TestUpserter_StampsSyncedAt(t *testing.T) {
	w := &recordingWriter{}
	u := NewUpserter(w, 10, slog.Default())
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return stamp }

	_, err := u.Upsert(context.Background(), testTable, makeRows(2))
	require.NoError(t, err)

	require.Len(t, w.batches, 1)
	for _, row := range w.batches[0] {
		require.Len(t, row, len(testTable.Columns)+1)
		assert.Equal(t, stamp, row[len(row)-1])
	}
}

func TestUpserter_DropsRowsWithoutKey(t *testing.T) {
	w := &recordingWriter{}
	u := NewUpserter(w, 10, slog.Default())

	id := 7
	rows := []Row{testRow{ID: nil, Name: "a"}, testRow{ID: &id, Name: "b"}}

	rep, err := u.Upsert(context.Background(), testTable, rows)

	require.NoError(t, err)
	assert.Equal(t, 1, rep.Written)
	assert.Equal(t, 1, rep.Skipped)
	require.Len(t, w.batches, 1)
	assert.Equal(t, 7, w.batches[0][0][0])
}

func TestUpserter_EmptyStringAndZeroTimeKeys(t *testing.T) {
	table := Table{Name: "t", Columns: []string{"city_id", "date"}, ConflictKey: []string{"city_id", "date"}}
	w := &recordingWriter{}
	u := NewUpserter(w, 10, slog.Default())

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		rowFunc(func() []any { return []any{"", day} }),
		rowFunc(func() []any { return []any{"x", time.Time{}} }),
		rowFunc(func() []any { return []any{"x", day} }),
	}

	rep, err := u.Upsert(context.Background(), table, rows)

	require.NoError(t, err)
	assert.Equal(t, 1, rep.Written)
	assert.Equal(t, 2, rep.Skipped)
}

type rowFunc func() []any

func (f rowFunc) Values() []any { return f() }

func TestUpserter_AbortsOnWriteFailure(t *testing.T) {
	w := &recordingWriter{failAt: 2}
	u := NewUpserter(w, 500, slog.Default())

	rep, err := u.Upsert(context.Background(), testTable, makeRows(1200))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, rep.Batches)
	assert.Equal(t, 500, rep.Written)
	assert.Len(t, w.batches, 1)
}

func TestUpserter_InvalidTable(t *testing.T) {
	u := NewUpserter(&recordingWriter{}, 10, slog.Default())

	_, err := u.Upsert(context.Background(), Table{Name: "x", Columns: []string{"a"}, ConflictKey: []string{"b"}}, nil)
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = u.Upsert(context.Background(), Table{Name: "x", Columns: []string{"a", "b"}, ConflictKey: []string{"a"}}, makeRows(1))
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestChunk(t *testing.T) {
	assert.Nil(t, Chunk([]int{}, 3))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, Chunk([]int{1, 2, 3}, 3))
}
