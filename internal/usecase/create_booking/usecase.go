package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// UseCase use case для создания бронирования
type UseCase struct {
	propertyRepo PropertyRepository
	bookingRepo  BookingRepository
	availability ConflictChecker
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	propertyRepo PropertyRepository,
	bookingRepo BookingRepository,
	availability ConflictChecker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute создает бронирование в статусе PENDING.
// Строка объекта блокируется на время проверки пересечений и вставки,
// поэтому конкурентные бронирования одного объекта выполняются по очереди.
// Статус объекта не меняется до подтверждения оплаты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%d, property=%d, period=%s - %s",
		req.UserID, req.PropertyID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	interval := domain.Interval{Start: req.StartDate, End: req.EndDate}
	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем объект
		property, err := uc.propertyRepo.GetByIDForUpdate(txCtx, req.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}

		// 2. Объект должен быть свободен
		if !property.IsFree() {
			return fmt.Errorf("%w: property status is %s", ErrPropertyNotAvailable, property.Status)
		}

		// 3. Проверяем пересечение с активными бронированиями
		conflict, err := uc.availability.HasConflict(txCtx, req.PropertyID, interval)
		if err != nil {
			return err
		}
		if conflict {
			return ErrDateConflict
		}

		// 4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PropertyID: req.PropertyID,
			UserID:     req.UserID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Status:     domain.BookingStatusPending,
		})
		if err != nil {
			// exclusion constraint в БД
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return ErrDateConflict
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			uc.logger.Error("CreateBooking: property=%d: %v", req.PropertyID, err)
		} else {
			uc.logger.Warn("CreateBooking: property=%d: %v", req.PropertyID, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingTransition(string(domain.BookingStatusPending), 1)
	if err := uc.notifier.Notify(ctx, notification.NewEvent(notification.EventBookingCreated, result.ID, map[string]any{
		"property_id": result.PropertyID,
		"user_id":     result.UserID,
		"start_date":  result.StartDate.Format(domain.DateFormat),
		"end_date":    result.EndDate.Format(domain.DateFormat),
	})); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		UserID:     result.UserID,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
