package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// DefaultSize верхняя граница строк в одном вызове записи
const DefaultSize = 500

// Writer хранилище, которое атомарно записывает один пакет строк.
// Каждая строка содержит значения колонок Table.WithSyncedAt().
type Writer interface {
	UpsertBatch(ctx context.Context, table Table, rows [][]any) error
}

// Report итог записи одного домена
type Report struct {
	Written int
	Skipped int
	Batches int
}

// Upserter пишет строки пакетами не больше size. Пакеты независимы:
// при ошибке уже записанный префикс остается, оставшиеся пакеты не выполняются.
type Upserter struct {
	w    Writer
	size int
	log  *slog.Logger
	now  func() time.Time
}

func NewUpserter(w Writer, size int, log *slog.Logger) *Upserter {
	if size <= 0 {
		size = DefaultSize
	}
	return &Upserter{
		w:    w,
		size: size,
		log:  log.With(slog.String("component", "batch_upserter")),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Size размер пакета
func (u *Upserter) Size() int {
	return u.size
}

func (u *Upserter) Upsert(ctx context.Context, table Table, rows []Row) (Report, error) {
	var rep Report
	if err := table.validate(); err != nil {
		return rep, err
	}
	keyIdx, _ := table.keyIndexes()

	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		v := r.Values()
		if len(v) != len(table.Columns) {
			return rep, fmt.Errorf("%w: %s: row has %d values for %d columns",
				ErrInvalidTable, table.Name, len(v), len(table.Columns))
		}
		if !keyPresent(v, keyIdx) {
			rep.Skipped++
			continue
		}
		values = append(values, v)
	}

	if rep.Skipped > 0 {
		u.log.Warn("rows without conflict key dropped",
			slog.String("table", table.Name),
			slog.Int("skipped", rep.Skipped),
		)
	}

	stamp := u.now()
	for _, chunk := range Chunk(values, u.size) {
		stamped := make([][]any, len(chunk))
		for i, v := range chunk {
			stamped[i] = append(v[:len(v):len(v)], stamp)
		}

		if err := u.w.UpsertBatch(ctx, table, stamped); err != nil {
			u.log.Error("batch upsert failed",
				slog.String("table", table.Name),
				slog.Int("batch", rep.Batches+1),
				slog.Int("written", rep.Written),
				slog.String("error", err.Error()),
			)
			return rep, fmt.Errorf("%w: %s batch %d: %w", ErrStorageWrite, table.Name, rep.Batches+1, err)
		}
		rep.Batches++
		rep.Written += len(chunk)
	}

	u.log.Debug("table synced",
		slog.String("table", table.Name),
		slog.Int("written", rep.Written),
		slog.Int("batches", rep.Batches),
	)
	return rep, nil
}

// Chunk делит срез на смежные части длиной не больше size
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func keyPresent(values []any, idx []int) bool {
	for _, i := range idx {
		switch v := values[i].(type) {
		case nil:
			return false
		case string:
			if v == "" {
				return false
			}
		case time.Time:
			if v.IsZero() {
				return false
			}
		}
	}
	return true
}
