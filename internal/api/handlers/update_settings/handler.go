package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/settings"
	"github.com/m04kA/SMC-PropertyService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные настроек"
	msgLevelNotFound      = "уровень комиссии не настроен"
	msgForbidden          = "доступ только для администратора"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
// Все изменения применяются атомарно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r.Context()) {
		userID, _ := middleware.GetUserID(r.Context())
		h.logger.Warn("PUT /settings - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /settings - Invalid data: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidData)

		case errors.Is(err, settings.ErrLevelNotFound):
			handlers.RespondDomainError(w, err, msgLevelNotFound)

		default:
			h.logger.Error("PUT /settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("PUT /settings - Failed to read settings after update: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /settings - Settings updated: duration=%d, levels=%d", result.BookingDurationDays, len(result.CommissionLevels))
	handlers.RespondJSON(w, http.StatusOK, result)
}
