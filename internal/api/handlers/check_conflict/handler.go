package check_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/service/availability"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval   = "дата начала должна быть раньше даты окончания"
	msgPropertyNotFound  = "объект не найден"
)

// ConflictResponse HTTP response model
type ConflictResponse struct {
	PropertyID  int64  `json:"propertyId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	HasConflict bool   `json:"hasConflict"`
}

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

// Handle GET /api/v1/properties/{propertyId}/conflicts
// Query params: start, end (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	startStr, endStr := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	start, errStart := handlers.ParseDate(startStr)
	end, errEnd := handlers.ParseDate(endStr)
	if errStart != nil || errEnd != nil {
		h.logger.Warn("GET /properties/{id}/conflicts - Invalid date: start=%s, end=%s", startStr, endStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	conflict, err := h.service.HasConflict(r.Context(), propertyID, domain.Interval{Start: start, End: end})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInterval):
			handlers.RespondDomainError(w, err, msgInvalidInterval)
			return
		case errors.Is(err, availability.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/conflicts - Property not found: property_id=%d", propertyID)
			handlers.RespondDomainError(w, err, msgPropertyNotFound)
			return
		}
		h.logger.Error("GET /properties/{id}/conflicts - Failed to check conflict: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ConflictResponse{
		PropertyID:  propertyID,
		StartDate:   startStr,
		EndDate:     endStr,
		HasConflict: conflict,
	})
}
