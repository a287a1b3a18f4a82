package dealers

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// DealerRepository интерфейс репозитория дилеров
type DealerRepository interface {
	Create(ctx context.Context, dealer *domain.Dealer) (*domain.Dealer, error)
	GetByID(ctx context.Context, id int64) (*domain.Dealer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Dealer, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Dealer, error)
	ListAll(ctx context.Context) ([]*domain.Dealer, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.DealerStatus) error
}

// CodeGenerator генератор реферальных кодов
type CodeGenerator interface {
	Generate() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
