package job

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams параметры запуска задачи не прошли проверку
	ErrInvalidParams = errors.New("invalid job parameters")
	// ErrInvalidPayload входное тело задачи не прошло проверку
	ErrInvalidPayload = fmt.Errorf("invalid payload: %w", ErrInvalidParams)
)
