package update_dealer_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

const (
	msgInvalidDealerID    = "некорректный ID дилера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус дилера"
	msgInvalidTransition  = "статус дилера не может быть изменен"
	msgNotFound           = "дилер не найден"
	msgForbidden          = "доступ только для администратора"
)

type Handler struct {
	service DealerService
	logger  Logger
}

func NewHandler(service DealerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/dealers/{dealerId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealerID, err := handlers.PathInt64(r, "dealerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDealerID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /dealers/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.IsAdmin = middleware.IsAdmin(r.Context())

	dealer, err := h.service.UpdateStatus(r.Context(), dealerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, dealers.ErrAccessDenied):
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, dealers.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidStatus)

		case errors.Is(err, dealers.ErrDealerNotFound):
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, dealers.ErrInvalidDealerState):
			handlers.RespondDomainError(w, err, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /dealers/{id}/status - Failed to update status: dealer_id=%d, error=%v", dealerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /dealers/{id}/status - Dealer status updated: dealer_id=%d, status=%s", dealerID, dealer.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainDealer(dealer))
}
