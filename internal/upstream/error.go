package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstreamUnreachable сеть, таймаут, 5xx или 429. Можно повторить.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	// ErrUpstreamMalformed тело ответа не удалось декодировать.
	ErrUpstreamMalformed = errors.New("upstream response malformed")
	// ErrUpstreamRejected сервис отклонил запрос (4xx кроме 429).
	ErrUpstreamRejected = errors.New("upstream rejected request")
)

// StatusError ответ upstream с кодом не из диапазона 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Is относит код ответа к одной из категорий ошибок upstream
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUpstreamUnreachable:
		return retryableStatus(e.StatusCode)
	case ErrUpstreamRejected:
		return !retryableStatus(e.StatusCode)
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// IsNotFound сообщает, что upstream ответил 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsRetryable сообщает, имеет ли смысл повторить запрос.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnreachable)
}
