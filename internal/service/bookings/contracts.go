package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPropertyID(ctx context.Context, propertyID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
	ExpirePending(ctx context.Context, cutoff time.Time) ([]int64, error)
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.PropertyStatus) error
}

// SettingsProvider источник длительности бронирования
type SettingsProvider interface {
	GetBookingDurationDays(ctx context.Context) (int, error)
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
