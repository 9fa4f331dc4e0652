package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Auth пропускает только запросы с Authorization: Bearer <secret>
type Auth struct {
	expected []byte
	log      *slog.Logger
}

// New секрет передается явно. Пустой секрет закрывает все задачи.
func New(secret string, log *slog.Logger) *Auth {
	a := &Auth{log: log.With(slog.String("component", "auth_middleware"))}
	if secret != "" {
		a.expected = []byte("Bearer " + secret)
	}
	return a
}

// Authorized точное сравнение заголовка за постоянное время
func (a *Auth) Authorized(header string) bool {
	if len(a.expected) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), a.expected) == 1
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !a.Authorized(ctx.Header("Authorization")) {
			a.log.Warn("unauthorized job request",
				slog.String("path", ctx.URL().Path),
				slog.String("remote_addr", ctx.RemoteAddr()),
			)
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusUnauthorized)

			if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
				"error": "Unauthorized",
			}); err != nil {
				a.log.Error("encode unauthorized response", slog.String("error", err.Error()))
			}
			return
		}

		next(ctx)
	}
}
