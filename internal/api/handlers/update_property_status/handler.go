package update_property_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус объекта"
	msgNotFound           = "объект не найден"
	msgForbidden          = "доступ только для администратора"
)

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/properties/{propertyId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /properties/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.IsAdmin = middleware.IsAdmin(r.Context())

	result, err := h.service.SetStatus(r.Context(), propertyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrAccessDenied):
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, properties.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidStatus)

		case errors.Is(err, properties.ErrPropertyNotFound):
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("PATCH /properties/{id}/status - Failed to update status: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /properties/{id}/status - Status updated: property_id=%d, status=%s", propertyID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
