package get_dealer

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type DealerService interface {
	GetByID(ctx context.Context, id int64) (*domain.Dealer, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
