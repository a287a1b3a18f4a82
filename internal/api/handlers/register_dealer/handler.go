package register_dealer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "регистрировать другого пользователя может только администратор"
	msgInvalidReferralCode = "реферальный код не найден"
	msgAlreadyExists       = "пользователь уже является дилером"
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

// Handle POST /api/v1/dealers
// userId в теле необязателен: по умолчанию регистрируется текущий пользователь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RegisterDealerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dealers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch {
	case req.UserID == 0:
		req.UserID = userID
	case req.UserID != userID && !middleware.IsAdmin(r.Context()):
		h.logger.Warn("POST /dealers - user=%d tried to register user=%d", userID, req.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	dealer, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, dealers.ErrInvalidReferralCode):
			handlers.RespondDomainError(w, err, msgInvalidReferralCode)

		case errors.Is(err, dealers.ErrDealerAlreadyExists):
			handlers.RespondDomainError(w, err, msgAlreadyExists)

		case errors.Is(err, dealers.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /dealers - Failed to register dealer: user=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dealers - Dealer registered: dealer_id=%d, user=%d", dealer.ID, dealer.UserID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainDealer(dealer))
}
