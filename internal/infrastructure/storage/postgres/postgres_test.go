package postgres

import (
	"context"
	"errors"
	"testing"

	"mobisync/internal/batch"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResults struct {
	execs  int
	failAt int
	closed bool
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	r.execs++
	if r.failAt > 0 && r.execs == r.failAt {
		return pgconn.CommandTag{}, errors.New("duplicate key")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("not implemented") }
func (r *fakeResults) QueryRow() pgx.Row       { return nil }
func (r *fakeResults) Close() error {
	r.closed = true
	return nil
}

type fakeConn struct {
	batch   *pgx.Batch
	results *fakeResults
}

func (c *fakeConn) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	c.batch = b
	return c.results
}

func (c *fakeConn) Ping(context.Context) error { return nil }

var table = batch.Table{
	Name:        "companies",
	Columns:     []string{"id", "name"},
	ConflictKey: []string{"id"},
}

func TestStorage_UpsertBatch(t *testing.T) {
	c := &fakeConn{results: &fakeResults{}}
	s := &Storage{conn: c}

	err := s.UpsertBatch(context.Background(), table, [][]any{
		{"1", "Acme", "2026-10-16"},
		{"2", "Globex", "2026-10-16"},
	})

	require.NoError(t, err)
	require.NotNil(t, c.batch)
	assert.Equal(t, 2, c.batch.Len())
	q := c.batch.QueuedQueries[0]
	assert.Equal(t,
		"INSERT INTO companies (id, name, synced_at) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, synced_at = EXCLUDED.synced_at",
		q.SQL)
	assert.Equal(t, []any{"1", "Acme", "2026-10-16"}, q.Arguments)
	assert.Equal(t, 2, c.results.execs)
	assert.True(t, c.results.closed)
}

func TestStorage_UpsertBatch_RowError(t *testing.T) {
	c := &fakeConn{results: &fakeResults{failAt: 2}}
	s := &Storage{conn: c}

	err := s.UpsertBatch(context.Background(), table, [][]any{{"1", "a", 0}, {"2", "b", 0}, {"3", "c", 0}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert companies row 1")
	assert.True(t, c.results.closed)
}

func TestStorage_UpsertBatch_Empty(t *testing.T) {
	c := &fakeConn{results: &fakeResults{}}
	s := &Storage{conn: c}

	require.NoError(t, s.UpsertBatch(context.Background(), table, nil))
	assert.Nil(t, c.batch)
}
