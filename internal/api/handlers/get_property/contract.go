package get_property

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

type PropertyService interface {
	GetByID(ctx context.Context, id int64) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
