package update_property_status

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

type PropertyService interface {
	SetStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
