package distribute_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	distributeCommission "github.com/m04kA/SMC-PropertyService/internal/usecase/distribute_commission"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "сумма продажи должна быть положительной"
	msgNotFound           = "объект или его дилер не найден"
	msgForbidden          = "доступ только для администратора"
)

type Handler struct {
	useCase DistributeCommissionUseCase
	logger  Logger
}

func NewHandler(useCase DistributeCommissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/sales
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req SaleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/sales - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &distributeCommission.Request{
		PropertyID: propertyID,
		SaleAmount: req.SaleAmount,
		IsAdmin:    middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, distributeCommission.ErrAccessDenied):
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, distributeCommission.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidAmount)

		case errors.Is(err, distributeCommission.ErrPropertyOrDealerNotFound):
			h.logger.Warn("POST /properties/{id}/sales - Property or dealer not found: property_id=%d", propertyID)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("POST /properties/{id}/sales - Failed to distribute commission: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/sales - Commission distributed: property_id=%d, payouts=%d, total=%s",
		propertyID, len(result.Payouts), result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
