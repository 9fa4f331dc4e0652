package storage

import (
	"context"
	"fmt"

	"mobisync/internal/app/server/config"
	"mobisync/internal/batch"
	"mobisync/internal/infrastructure/migration"
	"mobisync/internal/infrastructure/storage/postgres"
	"mobisync/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// Storage хранилище синхронизированных строк
type Storage interface {
	batch.Writer
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Storage = (*postgres.Storage)(nil)
	_ Storage = (*sqlite.Storage)(nil)
)

// Open открывает хранилище по DATABASE_DRIVER. Для PostgreSQL сначала применяются миграции.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		mg := migration.NewMigration(cfg, migration.DefaultEngine, log)
		if err := mg.Up(); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		return postgres.New(ctx, cfg.DB.DatabaseURI)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.DB.DatabaseURI)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}
