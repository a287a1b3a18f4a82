package bookings

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrBookingNotFound     = domain.ErrBookingNotFound
	ErrPropertyNotFound    = domain.ErrPropertyNotFound
	ErrAccessDenied        = domain.ErrUnauthorized
	ErrInvalidBookingState = domain.ErrInvalidBookingState
	ErrInvalidInput        = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "bookings: internal error"}
)
