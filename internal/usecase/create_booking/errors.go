package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInvalidInterval возвращается, когда start >= end
	ErrInvalidInterval = domain.ErrInvalidInterval

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = domain.ErrPropertyNotFound

	// ErrPropertyNotAvailable возвращается, когда объект не в статусе FREE
	ErrPropertyNotAvailable = domain.ErrPropertyNotAvailable

	// ErrDateConflict возвращается, когда даты пересекаются с активным бронированием
	ErrDateConflict = domain.ErrDateConflict

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "create_booking: internal error"}
)
