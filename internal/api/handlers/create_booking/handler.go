package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-PropertyService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInterval      = "дата заезда должна быть раньше даты выезда"
	msgInvalidInput         = "некорректные данные бронирования"
	msgPropertyNotFound     = "объект не найден"
	msgPropertyNotAvailable = "объект недоступен для бронирования"
	msgDateConflict         = "выбранные даты пересекаются с существующим бронированием"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondDomainError(w, err, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondDomainError(w, err, msgPropertyNotFound)

		case errors.Is(err, createBooking.ErrPropertyNotAvailable):
			h.logger.Warn("POST /bookings - Property not available: property_id=%d", req.PropertyID)
			handlers.RespondDomainError(w, err, msgPropertyNotAvailable)

		case errors.Is(err, createBooking.ErrDateConflict):
			h.logger.Warn("POST /bookings - Date conflict: user_id=%d, property_id=%d, %s..%s",
				userID, req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondDomainError(w, err, msgDateConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, property_id=%d, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, property_id=%d",
		result.ID, userID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
