package distribute_commission

import (
	"context"

	distributeCommission "github.com/m04kA/SMC-PropertyService/internal/usecase/distribute_commission"
)

type DistributeCommissionUseCase interface {
	Execute(ctx context.Context, req *distributeCommission.Request) (*distributeCommission.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
