package distribute_commission

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error)
}

// DealerRepository интерфейс репозитория дилеров
type DealerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Dealer, error)
	AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error
}

// CommissionRepository интерфейс репозитория комиссий
type CommissionRepository interface {
	Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error)
}

// Hierarchy обход предков дилера
type Hierarchy interface {
	AncestorChain(ctx context.Context, dealerID int64, maxLevels int) ([]*domain.Dealer, error)
}

// SettingsProvider снапшот таблицы процентов
type SettingsProvider interface {
	Snapshot(ctx context.Context) (*domain.Settings, error)
}

// Notifier отправляет события после коммита
type Notifier interface {
	Notify(ctx context.Context, event notification.Event) error
}

// Metrics бизнес-метрики выплат
type Metrics interface {
	AddCommission(level string, amount float64)
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
