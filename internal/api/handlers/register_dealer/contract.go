package register_dealer

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

type DealerService interface {
	Register(ctx context.Context, req *models.RegisterDealerRequest) (*domain.Dealer, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
