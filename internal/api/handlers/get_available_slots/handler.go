package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/service/availability"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingWindow     = "параметры from и to обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWindow     = "некорректное окно поиска"
	msgPropertyNotFound  = "объект не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/available-slots
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/available-slots - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}
	from, errFrom := handlers.ParseDate(fromStr)
	to, errTo := handlers.ParseDate(toStr)
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /properties/{id}/available-slots - Invalid date: from=%s, to=%s", fromStr, toStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.ListAvailableSlots(r.Context(), propertyID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInterval):
			handlers.RespondDomainError(w, err, msgInvalidWindow)

		case errors.Is(err, availability.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/available-slots - Property not found: property_id=%d", propertyID)
			handlers.RespondDomainError(w, err, msgPropertyNotFound)

		default:
			h.logger.Error("GET /properties/{id}/available-slots - Failed to get slots: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromSlots(propertyID, domain.Interval{Start: from, End: to}, slots)

	h.logger.Info("GET /properties/{id}/available-slots - Slots retrieved successfully: property_id=%d, slots_count=%d",
		propertyID, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
