package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mobisync/internal/app/client/config"

	"golang.org/x/exp/slog"
)

const userAgent = "syncctl/1.0"

// Response ответ сервера как есть: статус и тело
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// StatusError ответ сервера с кодом вне 2xx
type StatusError struct {
	StatusCode int
	Message    string
	Body       json.RawMessage
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// RoutesParams параметры задачи маршрутов, нулевые значения не передаются
type RoutesParams struct {
	Start   string
	End     string
	Days    int
	PerPage int
}

func (p RoutesParams) values() url.Values {
	q := url.Values{}
	if p.Start != "" {
		q.Set("start", p.Start)
	}
	if p.End != "" {
		q.Set("end", p.End)
	}
	if p.Days > 0 {
		q.Set("days", strconv.Itoa(p.Days))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	secret  string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		log:     log,
		baseURL: cfg.Server,
		secret:  cfg.Secret,
	}
}

// SetSecret задает общий секрет для заголовка Authorization
func (h *Client) SetSecret(secret string) {
	h.secret = secret
}

// Health проверяет доступность сервера и хранилища
func (h *Client) Health(ctx context.Context) (*Response, error) {
	return h.do(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

func (h *Client) SyncRoutes(ctx context.Context, p RoutesParams) (*Response, error) {
	return h.do(ctx, http.MethodGet, "/api/v1/sync/routes", p.values(), nil)
}

func (h *Client) SyncStats(ctx context.Context, limit int) (*Response, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return h.do(ctx, http.MethodGet, "/api/v1/sync/stats", q, nil)
}

func (h *Client) SyncCompanies(ctx context.Context) (*Response, error) {
	return h.do(ctx, http.MethodGet, "/api/v1/sync/companies", nil, nil)
}

func (h *Client) SyncAirQuality(ctx context.Context, date string) (*Response, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	return h.do(ctx, http.MethodGet, "/api/v1/sync/air-quality", q, nil)
}

// SubmitSafety отправляет JSON пакет годовой статистики аварийности
func (h *Client) SubmitSafety(ctx context.Context, payload []byte) (*Response, error) {
	return h.do(ctx, http.MethodPost, "/api/v1/sync/safety", nil, payload)
}

func (h *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*Response, error) {
	u := h.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.secret != "" {
		req.Header.Set("Authorization", "Bearer "+h.secret)
	}

	h.log.Debug("sending request", slog.String("method", method), slog.String("url", u))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("response received", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(raw)))

	out := &Response{StatusCode: resp.StatusCode, Body: raw}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, statusError(resp.StatusCode, raw)
	}
	return out, nil
}

// statusError достает сообщение из {"error": "..."}. У отчетов задач error может отсутствовать,
// тогда берутся ошибки доменов.
func statusError(code int, raw []byte) *StatusError {
	e := &StatusError{StatusCode: code, Body: raw}

	var body struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return e
	}
	e.Message = body.Error
	if e.Message == "" && len(body.Errors) > 0 {
		e.Message = fmt.Sprintf("%d domain(s) failed", len(body.Errors))
	}
	return e
}
