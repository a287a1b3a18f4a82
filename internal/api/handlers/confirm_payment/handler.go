package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/domain"
	confirmPayment "github.com/m04kA/SMC-PropertyService/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingExternalRef   = "не указан идентификатор платежа"
	msgNotFound             = "бронирование не найдено"
	msgInvalidState         = "бронирование не ожидает оплаты"
	msgPaymentNotCompleted  = "платеж не завершен"
	msgPropertyNotAvailable = "объект уже занят"
	msgGatewayUnavailable   = "платежный провайдер недоступен"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingID:   bookingID,
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgMissingExternalRef)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, confirmPayment.ErrInvalidBookingState):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid state: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgInvalidState)

		case errors.Is(err, confirmPayment.ErrPaymentNotCompleted):
			h.logger.Warn("POST /bookings/{id}/confirm - Payment not completed: booking_id=%d, ref=%s", bookingID, req.ExternalRef)
			handlers.RespondDomainError(w, err, msgPaymentNotCompleted)

		case errors.Is(err, confirmPayment.ErrPropertyNotAvailable):
			h.logger.Warn("POST /bookings/{id}/confirm - Property not available: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgPropertyNotAvailable)

		// ErrGatewayUnavailable имеет Kind Internal, отличаем по статусу
		case domain.HTTPStatus(err) == http.StatusBadGateway:
			h.logger.Error("POST /bookings/{id}/confirm - Gateway unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%d, payment_id=%d", bookingID, result.PaymentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
