package get_property_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/bookings"
	"github.com/m04kA/SMC-PropertyService/internal/service/bookings/models"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgNotFound          = "объект не найден"
	msgForbidden         = "доступ только для администратора"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/bookings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetPropertyBookingsRequest{
		PropertyID: propertyID,
		Requester:  models.Requester{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())},
	}
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.GetPropertyBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id}/bookings - Access denied: user_id=%d", userID)
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidStatus)

		case errors.Is(err, bookings.ErrPropertyNotFound):
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("GET /properties/{id}/bookings - Failed to get bookings: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/bookings - Bookings retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
