package postgres

import (
	"context"
	"fmt"

	"mobisync/internal/batch"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// conn часть пула, которая нужна для записи
type conn interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Ping(ctx context.Context) error
}

type Storage struct {
	pool *pgxpool.Pool
	conn conn
}

func New(ctx context.Context, uri string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Storage{pool: pool, conn: pool}, nil
}

func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// UpsertBatch отправляет по одному INSERT ... ON CONFLICT на строку в одном pgx.Batch.
// Batch выполняется в неявной транзакции: пакет записывается целиком или не записывается.
func (s *Storage) UpsertBatch(ctx context.Context, table batch.Table, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	stmt := batch.UpsertStatement(table, placeholder)
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(stmt, r...)
	}

	br := s.conn.SendBatch(ctx, b)
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("upsert %s row %d: %w", table.Name, i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch %s: %w", table.Name, err)
	}
	return nil
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
