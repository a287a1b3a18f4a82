package check_conflict

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type AvailabilityService interface {
	HasConflict(ctx context.Context, propertyID int64, interval domain.Interval) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
