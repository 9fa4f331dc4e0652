package upstream

import (
	"context"
	"fmt"
	"iter"
	"time"
)

// DefaultMaxPages защищает от upstream, который никогда не сообщает о конце выдачи.
const DefaultMaxPages = 10000

// Page одна страница записей с метаданными пагинации
type Page[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
	Records    []T `json:"-"`
}

// PageFunc запрашивает одну страницу (нумерация с 1)
type PageFunc[T any] func(ctx context.Context, page, perPage int) (Page[T], error)

// Fetched запись с временем синхронизации
type Fetched[T any] struct {
	Record   T
	SyncedAt time.Time
}

// HasNext решает, нужна ли следующая страница.
// Пустая страница завершает обход, даже если total_pages обещает больше.
func HasNext[T any](p Page[T]) bool {
	return len(p.Records) > 0 && p.Page < p.TotalPages
}

// Pages лениво обходит страницы начиная с первой. Последовательность конечна:
// она прерывается на ошибке, по HasNext или после maxPages страниц.
func Pages[T any](ctx context.Context, fetch PageFunc[T], perPage, maxPages int) iter.Seq2[Page[T], error] {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return func(yield func(Page[T], error) bool) {
		for n := 1; n <= maxPages; n++ {
			if err := ctx.Err(); err != nil {
				yield(Page[T]{}, err)
				return
			}

			p, err := fetch(ctx, n, perPage)
			if err != nil {
				yield(Page[T]{}, fmt.Errorf("page %d: %w", n, err))
				return
			}
			// номер страницы, который вернул upstream, не учитываем: остановка считается по запрошенному
			p.Page = n

			if !yield(p, nil) || !HasNext(p) {
				return
			}
		}
	}
}

// Result итог полного обхода
type Result[T any] struct {
	Records    []Fetched[T]
	Pages      int
	TotalCount int
}

// FetchAll собирает записи всех страниц, помечая каждую временем получения страницы.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], perPage, maxPages int, now func() time.Time) (Result[T], error) {
	var res Result[T]
	for p, err := range Pages(ctx, fetch, perPage, maxPages) {
		if err != nil {
			return res, err
		}
		res.Pages++
		res.TotalCount = p.TotalCount

		stamp := now()
		for _, r := range p.Records {
			res.Records = append(res.Records, Fetched[T]{Record: r, SyncedAt: stamp})
		}
	}
	return res, nil
}
