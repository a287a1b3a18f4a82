package get_dealer_tree

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

const (
	msgInvalidDealerID = "некорректный ID дилера"
	msgInvalidDepth    = "некорректная глубина дерева"
	msgNotFound        = "дилер не найден"
	msgTreeTooDeep     = "дерево дилеров превышает допустимые пределы"
)

type Handler struct {
	service HierarchyService
	logger  Logger
}

func NewHandler(service HierarchyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealers/{dealerId}/tree
// Query params: depth (опционально, по умолчанию domain.DefaultSubtreeDepth)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dealerID, err := handlers.PathInt64(r, "dealerId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDealerID)
		return
	}

	depth := domain.DefaultSubtreeDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDepth)
			return
		}
	}

	tree, err := h.service.BuildSubtree(r.Context(), dealerID, depth)
	if err != nil {
		switch {
		case errors.Is(err, dealers.ErrInvalidInput):
			handlers.RespondDomainError(w, err, msgInvalidDepth)

		case errors.Is(err, dealers.ErrDealerNotFound):
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, dealers.ErrTreeTooDeep):
			h.logger.Warn("GET /dealers/{id}/tree - Tree too deep: dealer_id=%d, depth=%d", dealerID, depth)
			handlers.RespondDomainError(w, err, msgTreeTooDeep)

		default:
			h.logger.Error("GET /dealers/{id}/tree - Failed to build tree: dealer_id=%d, error=%v", dealerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dealers/{id}/tree - Tree built: dealer_id=%d, nodes=%d", dealerID, tree.TotalDescendantCount)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainNode(tree))
}
