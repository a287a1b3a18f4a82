package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	SetBookingDurationDays(ctx context.Context, days int) error
	UpsertCommissionLevel(ctx context.Context, level int, percentage decimal.Decimal) error
	DeleteCommissionLevel(ctx context.Context, level int) error
}

// SettingsCache интерфейс кэша снапшота настроек
type SettingsCache interface {
	Get(ctx context.Context) (*domain.Settings, bool, error)
	Set(ctx context.Context, settings *domain.Settings) error
	Invalidate(ctx context.Context) error
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
