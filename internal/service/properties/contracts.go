package properties

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error
}

// DealerRepository нужен для проверки дилера объекта
type DealerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Dealer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
