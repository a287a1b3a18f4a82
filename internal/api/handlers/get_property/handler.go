package get_property

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgNotFound          = "объект не найден"
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

// Handle GET /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			handlers.RespondDomainError(w, err, msgNotFound)
			return
		}
		h.logger.Error("GET /properties/{id} - Failed to get property: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
