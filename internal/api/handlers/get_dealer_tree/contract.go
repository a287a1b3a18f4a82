package get_dealer_tree

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type HierarchyService interface {
	BuildSubtree(ctx context.Context, dealerID int64, maxDepth int) (*domain.DealerNode, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
