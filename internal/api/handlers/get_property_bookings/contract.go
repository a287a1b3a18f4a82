package get_property_bookings

import (
	"context"

	"github.com/m04kA/SMC-PropertyService/internal/service/bookings/models"
)

type BookingService interface {
	GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
