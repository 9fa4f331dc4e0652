package batch

import "errors"

var (
	// ErrStorageWrite запись пакета завершилась ошибкой, остальные пакеты домена не выполнялись.
	ErrStorageWrite = errors.New("storage write failed")
	ErrInvalidTable = errors.New("invalid table definition")
)
