package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseBody = 32 << 20
	userAgent       = "mobisync/1.0"
)

// RetryPolicy ограничивает повторы для ErrUpstreamUnreachable
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultRetry три попытки с экспоненциальной задержкой
var DefaultRetry = RetryPolicy{
	Attempts: 3,
	Initial:  500 * time.Millisecond,
	Max:      5 * time.Second,
}

// Config параметры подключения к одному upstream сервису
type Config struct {
	Name    string
	BaseURL string
	Token   string // Authorization: Bearer
	APIKey  string // X-API-Key
	Timeout time.Duration
	RPS     float64 // 0 - без ограничения
	Retry   RetryPolicy
}

// Client выполняет аутентифицированные запросы к upstream и декодирует JSON.
type Client struct {
	http    *http.Client
	cfg     Config
	baseURL *url.URL
	limiter *rate.Limiter
	log     *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q for %s", cfg.BaseURL, cfg.Name)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry = DefaultRetry
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		cfg:     cfg,
		baseURL: base,
		limiter: limiter,
		log:     log.With(slog.String("component", "upstream"), slog.String("upstream", cfg.Name)),
		sleep:   sleepContext,
	}, nil
}

// Name имя upstream сервиса из конфигурации
func (c *Client) Name() string {
	return c.cfg.Name
}

// Get выполняет GET и декодирует тело ответа в out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.GetRaw(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstreamMalformed, c.cfg.Name, path, err)
	}
	return nil
}

// GetRaw выполняет GET с повторами и возвращает тело ответа без декодирования.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.cfg.Retry.Attempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, fmt.Errorf("%w: %w", lastErr, err)
			}
		}

		body, err := c.do(ctx, path, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}

		c.log.Warn("upstream request failed",
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", ErrUpstreamUnreachable, err)
	}

	u := *c.baseURL
	u.Path = u.Path + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	c.log.Debug("upstream request", slog.String("url", u.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnreachable, c.cfg.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstreamUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	return body, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.cfg.Retry.Initial * time.Duration(1<<attempt)
	if c.cfg.Retry.Max > 0 && d > c.cfg.Retry.Max {
		d = c.cfg.Retry.Max
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
