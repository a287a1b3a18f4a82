package create_booking

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ConflictChecker проверка пересечения интервала с активными бронированиями
type ConflictChecker interface {
	HasConflict(ctx context.Context, propertyID int64, interval domain.Interval) (bool, error)
}

// Notifier отправляет события после коммита
type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}

// Metrics бизнес-метрики переходов бронирований
type Metrics interface {
	IncBookingTransition(status string, n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
