package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.PropertyStatus) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// PaymentGateway внешний провайдер платежей
type PaymentGateway interface {
	IsPaymentSucceeded(ctx context.Context, externalRef string) (bool, error)
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
