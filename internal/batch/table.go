package batch

import (
	"fmt"
	"slices"
	"strings"
)

// SyncedAtColumn проставляется при каждой записи
const SyncedAtColumn = "synced_at"

// Table описание целевой таблицы домена
type Table struct {
	Name string
	// Columns в том же порядке, что и Row.Values()
	Columns     []string
	ConflictKey []string
}

// Row каноническая строка домена
type Row interface {
	Values() []any
}

// Rows приводит срез строк домена к []Row
func Rows[R Row](rs []R) []Row {
	out := make([]Row, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// Nullable превращает nil-указатель в NULL, иначе разыменовывает
func Nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func (t Table) validate() error {
	if t.Name == "" || len(t.Columns) == 0 || len(t.ConflictKey) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidTable, t.Name)
	}
	if _, err := t.keyIndexes(); err != nil {
		return err
	}
	return nil
}

func (t Table) keyIndexes() ([]int, error) {
	idx := make([]int, 0, len(t.ConflictKey))
	for _, k := range t.ConflictKey {
		found := slices.Index(t.Columns, k)
		if found < 0 {
			return nil, fmt.Errorf("%w: %s: conflict key %q is not a column", ErrInvalidTable, t.Name, k)
		}
		idx = append(idx, found)
	}
	return idx, nil
}

// WithSyncedAt колонки таблицы плюс synced_at
func (t Table) WithSyncedAt() []string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns...)
	return append(cols, SyncedAtColumn)
}

// UpsertStatement строит INSERT ... ON CONFLICT DO UPDATE для одной строки.
// placeholder возвращает обозначение параметра по номеру с 1 ($1 или ?).
func UpsertStatement(t Table, placeholder func(n int) string) string {
	cols := t.WithSyncedAt()

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = placeholder(i + 1)
	}

	var updates []string
	for _, c := range cols {
		if slices.Contains(t.ConflictKey, c) {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		t.Name,
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
		strings.Join(t.ConflictKey, ", "),
		strings.Join(updates, ", "),
	)
}
