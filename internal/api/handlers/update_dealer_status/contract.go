package update_dealer_status

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

type DealerService interface {
	UpdateStatus(ctx context.Context, dealerID int64, req *models.UpdateStatusRequest) (*domain.Dealer, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
