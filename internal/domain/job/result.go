package job

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"mobisync/internal/batch"
	"mobisync/internal/upstream"

	"github.com/google/uuid"
)

// Outcome результат одного домена внутри задачи: либо количество строк, либо ошибка
type Outcome struct {
	Domain  string
	Count   int
	Skipped int
	Err     error
	// Partial ошибка части домена (например, одного города): попадает только в errors
	Partial bool
}

func Succeeded(domain string, rep batch.Report) Outcome {
	return Outcome{Domain: domain, Count: rep.Written, Skipped: rep.Skipped}
}

// Failed ошибка домена. Count - строки, записанные до сбоя.
func Failed(domain string, written int, err error) Outcome {
	return Outcome{Domain: domain, Count: written, Err: err}
}

// PartFailed ошибка части домена под ключом key, например air_quality:<city>
func PartFailed(key string, err error) Outcome {
	return Outcome{Domain: key, Err: err, Partial: true}
}

// Result ответ задачи
type Result struct {
	Success bool              `json:"success"`
	RunID   string            `json:"run_id"`
	Synced  map[string]int    `json:"synced"`
	Skipped map[string]int    `json:"skipped,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`

	failure error
}

// Err первая ошибка домена в порядке добавления
func (r Result) Err() error {
	return r.failure
}

// StatusCode HTTP статус ответа: 200, 502 для сбоя upstream, 500 для прочих
func (r Result) StatusCode() int {
	if r.failure == nil {
		return http.StatusOK
	}
	return StatusFor(r.failure)
}

// StatusFor сопоставляет ошибку задачи с HTTP статусом
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, upstream.ErrUpstreamUnreachable),
		errors.Is(err, upstream.ErrUpstreamMalformed),
		errors.Is(err, upstream.ErrUpstreamRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Aggregator собирает результаты доменов. Безопасен для конкурентного Add.
type Aggregator struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Add(o Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outcomes = append(a.outcomes, o)
}

// Result сводка. Провалившийся домен попадает в synced с числом уже записанных строк
// и в errors с текстом ошибки.
func (a *Aggregator) Result(runID string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	res := Result{
		Success: true,
		RunID:   runID,
		Synced:  make(map[string]int, len(a.outcomes)),
	}

	for _, o := range a.outcomes {
		if !o.Partial {
			res.Synced[o.Domain] += o.Count
		}
		if o.Skipped > 0 {
			if res.Skipped == nil {
				res.Skipped = make(map[string]int)
			}
			res.Skipped[o.Domain] += o.Skipped
		}
		if o.Err == nil {
			continue
		}

		res.Success = false
		if res.Errors == nil {
			res.Errors = make(map[string]string)
		}
		res.Errors[o.Domain] = o.Err.Error()
		if res.failure == nil {
			res.failure = o.Err
		}
	}

	if !res.Success {
		failed := make([]string, 0, len(res.Errors))
		for d := range res.Errors {
			failed = append(failed, d)
		}
		sort.Strings(failed)
		res.Error = fmt.Sprintf("sync failed for %s", strings.Join(failed, ", "))
	}

	return res
}

// NewRunID идентификатор одного запуска задачи
func NewRunID() string {
	return uuid.New().String()
}

// Store запись строк домена пакетами (batch.Upserter)
type Store interface {
	Upsert(ctx context.Context, table batch.Table, rows []batch.Row) (batch.Report, error)
}

// Write записывает строки домена и превращает итог в Outcome
func Write(ctx context.Context, store Store, domain string, table batch.Table, rows []batch.Row) Outcome {
	rep, err := store.Upsert(ctx, table, rows)
	if err != nil {
		return Failed(domain, rep.Written, err)
	}
	return Succeeded(domain, rep)
}
