// Package apierr задает формат ошибок huma: {"error": "..."}.
package apierr

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"mobisync/internal/domain/job"

	"github.com/danielgtaylor/huma/v2"
)

// Body тело ошибки любого эндпоинта
type Body struct {
	status  int
	Message string `json:"error" example:"Unauthorized" doc:"Error message"`
}

func (e *Body) Error() string {
	return e.Message
}

func (e *Body) GetStatus() int {
	return e.status
}

var once sync.Once

// Setup подменяет huma.NewError. Ошибки валидации входа huma (422) отдаются как 400.
func Setup() {
	once.Do(func() {
		huma.NewError = New
	})
}

func New(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		details = append(details, err.Error())
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return &Body{status: status, Message: msg}
}

// FromJob ошибка сервиса задачи в HTTP ошибку
func FromJob(err error) error {
	if err == nil {
		return nil
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}
	return huma.NewError(job.StatusFor(err), err.Error())
}
