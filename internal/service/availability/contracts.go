package availability

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByPropertyInRange(ctx context.Context, propertyID int64, window domain.Interval) ([]*domain.Booking, error)
}

// SettingsProvider источник длительности бронирования
type SettingsProvider interface {
	GetBookingDurationDays(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
