package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// validateRequest проверяет входные данные до открытия транзакции
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyId must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if !(domain.Interval{Start: req.StartDate, End: req.EndDate}).IsValid() {
		return ErrInvalidInterval
	}
	return nil
}
