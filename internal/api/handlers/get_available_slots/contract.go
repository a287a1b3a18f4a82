package get_available_slots

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type AvailabilityService interface {
	ListAvailableSlots(ctx context.Context, propertyID int64, from, to time.Time) (iter.Seq[domain.Slot], error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
