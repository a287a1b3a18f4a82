package create_property

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

type PropertyService interface {
	Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
