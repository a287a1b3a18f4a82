package confirm_payment

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrInvalidInput         = domain.ErrInvalidInput
	ErrBookingNotFound      = domain.ErrBookingNotFound
	ErrPropertyNotFound     = domain.ErrPropertyNotFound
	ErrInvalidBookingState  = domain.ErrInvalidBookingState
	ErrPaymentNotCompleted  = domain.ErrPaymentNotCompleted
	ErrPropertyNotAvailable = domain.ErrPropertyNotAvailable

	// ErrGatewayUnavailable возвращается, когда провайдер платежей не ответил
	ErrGatewayUnavailable = &domain.Error{Kind: domain.KindInternal, Status: http.StatusBadGateway, Message: "confirm_payment: payment gateway unavailable"}

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "confirm_payment: internal error"}
)
