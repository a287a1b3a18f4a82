package settings

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при значениях вне допустимых границ
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrLevelNotFound возвращается при удалении ненастроенного уровня
	ErrLevelNotFound = domain.ErrCommissionLevelNotFound

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "settings: internal error"}
)
