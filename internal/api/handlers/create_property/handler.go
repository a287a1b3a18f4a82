package create_property

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные объекта"
	msgDealerNotFound     = "дилер не найден"
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

// Handle POST /api/v1/properties
// Владельцем становится пользователь из X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("POST /properties - Invalid data: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidData)

		case errors.Is(err, properties.ErrDealerNotFound):
			handlers.RespondDomainError(w, err, msgDealerNotFound)

		default:
			h.logger.Error("POST /properties - Failed to create property: owner=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties - Property created: property_id=%d, owner=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
