package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"mobisync/internal/batch"

	// регистрирует драйвер sqlite3
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Storage SQLite для локальных запусков и тестов. Схему создает сам.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// один писатель, иначе database is locked
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB доступ для чтения в тестах и утилитах
func (s *Storage) DB() *sql.DB {
	return s.db
}

// UpsertBatch пишет пакет в одной транзакции одним подготовленным выражением
func (s *Storage) UpsertBatch(ctx context.Context, table batch.Table, rows [][]any) (err error) {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, batch.UpsertStatement(table, placeholder))
	if err != nil {
		return fmt.Errorf("prepare upsert %s: %w", table.Name, err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, r...); err != nil {
			return fmt.Errorf("upsert %s row %d: %w", table.Name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table.Name, err)
	}
	return nil
}

func placeholder(int) string {
	return "?"
}
