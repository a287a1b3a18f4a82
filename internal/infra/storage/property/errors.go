package property

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("property.repository: property not found")

	// ErrStatusConflict возвращается, когда текущий статус объекта не совпал с ожидаемым
	ErrStatusConflict = errors.New("property.repository: property status changed concurrently")

	ErrBuildQuery = errors.New("property.repository: failed to build query")
	ErrExecQuery  = errors.New("property.repository: failed to execute query")
	ErrScanRow    = errors.New("property.repository: failed to scan row")
)
