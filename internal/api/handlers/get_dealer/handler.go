package get_dealer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

const (
	msgInvalidDealerID = "некорректный ID дилера"
	msgNotFound        = "дилер не найден"
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

// Handle GET /api/v1/dealers/{dealerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealerID, err := handlers.PathInt64(r, "dealerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDealerID)
		return
	}

	dealer, err := h.service.GetByID(r.Context(), dealerID)
	if err != nil {
		if errors.Is(err, dealers.ErrDealerNotFound) {
			handlers.RespondDomainError(w, err, msgNotFound)
			return
		}
		h.logger.Error("GET /dealers/{id} - Failed to get dealer: dealer_id=%d, error=%v", dealerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainDealer(dealer))
}
