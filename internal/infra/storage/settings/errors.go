package settings

import "errors"

var (
	// ErrLevelNotFound возвращается, когда уровень комиссии не настроен
	ErrLevelNotFound = errors.New("settings.repository: commission level not found")

	// ErrInvalidValue возвращается, когда сохранённое значение не удалось разобрать
	ErrInvalidValue = errors.New("settings.repository: invalid stored value")

	ErrBuildQuery = errors.New("settings.repository: failed to build query")
	ErrExecQuery  = errors.New("settings.repository: failed to execute query")
	ErrScanRow    = errors.New("settings.repository: failed to scan row")
)
