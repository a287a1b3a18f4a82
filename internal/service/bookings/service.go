package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
	"github.com/m04kA/SMC-PropertyService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, отмена и просрочка
type Service struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	settings     SettingsProvider
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		settings:     settings,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор видит любое
func (s *Service) GetByID(ctx context.Context, id int64, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requester.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requester.UserID && !requester.IsAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.Requester.UserID && !req.Requester.IsAdmin {
		s.logger.Warn("GetUserBookings: user=%d is not allowed to read bookings of user=%d", req.Requester.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPropertyBookings получает все бронирования объекта
// Доступно только администратору
func (s *Service) GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPropertyBookings: fetching bookings for property=%d, status=%v", req.PropertyID, req.Status)

	if !req.Requester.IsAdmin {
		s.logger.Warn("GetPropertyBookings: access denied for user=%d", req.Requester.UserID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.propertyRepo.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("GetPropertyBookings: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("GetPropertyBookings: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyBookings - repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByPropertyID(ctx, req.PropertyID, status)
	if err != nil {
		s.logger.Error("GetPropertyBookings: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyBookings: successfully fetched %d bookings for property=%d", len(bookings), req.PropertyID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может владелец бронирования или администратор.
// Если бронирование было подтверждено, объект возвращается в FREE.
// Порядок блокировок: объект, затем бронирование.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d, admin=%t", bookingID, req.Requester.UserID, req.Requester.IsAdmin)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != req.Requester.UserID && !req.Requester.IsAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.Requester.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	var (
		cancelled *domain.Booking
		released  bool
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.propertyRepo.GetByIDForUpdate(txCtx, booking.PropertyID); err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}

		current, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		if !current.CanBeCancelled() {
			return fmt.Errorf("%w: booking is %s", ErrInvalidBookingState, current.Status)
		}

		err = s.bookingRepo.UpdateStatusIfCurrent(txCtx, bookingID, []domain.BookingStatus{current.Status}, domain.BookingStatusCancelled)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrInvalidBookingState
			}
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		if current.Status == domain.BookingStatusConfirmed {
			err := s.propertyRepo.UpdateStatusIfCurrent(txCtx, current.PropertyID, domain.PropertyStatusBooked, domain.PropertyStatusFree)
			switch {
			case err == nil:
				released = true
			case errors.Is(err, propertyRepo.ErrStatusConflict):
				// объект уже продан или освобожден администратором
				s.logger.Warn("Cancel: property id=%d is not BOOKED, status left as is", current.PropertyID)
			default:
				return fmt.Errorf("%w: failed to release property: %v", ErrInternal, err)
			}
		}

		current.Status = domain.BookingStatusCancelled
		cancelled = current
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error("Cancel: booking id=%d: %v", bookingID, err)
		} else {
			s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	s.metrics.IncBookingTransition(string(domain.BookingStatusCancelled), 1)
	s.notify(ctx, notification.NewEvent(notification.EventBookingCancelled, cancelled.ID, map[string]any{
		"property_id":       cancelled.PropertyID,
		"user_id":           cancelled.UserID,
		"property_released": released,
	}))

	s.logger.Info("Cancel: successfully cancelled booking id=%d, property released=%t", bookingID, released)
	return models.FromDomainBooking(cancelled), nil
}

// ExpireOverdue переводит в EXPIRED все PENDING бронирования, у которых start + длительность < now.
// Объект недвижимости не меняется: PENDING бронирование его не занимало.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (*models.ExpireResult, error) {
	days, err := s.settings.GetBookingDurationDays(ctx)
	if err != nil {
		s.logger.Error("ExpireOverdue: failed to get booking duration: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking duration: %v", ErrInternal, err)
	}

	cutoff := now.AddDate(0, 0, -days)
	ids, err := s.bookingRepo.ExpirePending(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireOverdue: repository error: %v", err)
		return nil, fmt.Errorf("%w: ExpireOverdue - repository error: %v", ErrInternal, err)
	}

	if len(ids) > 0 {
		s.metrics.IncBookingTransition(string(domain.BookingStatusExpired), len(ids))
		for _, id := range ids {
			s.notify(ctx, notification.NewEvent(notification.EventBookingExpired, id, nil))
		}
		s.logger.Info("ExpireOverdue: expired %d bookings started before %s", len(ids), cutoff.Format(time.RFC3339))
	}

	return &models.ExpireResult{Cutoff: cutoff, ExpiredIDs: ids}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// notify ошибки доставки только логируются, транзакция уже закоммичена
func (s *Service) notify(ctx context.Context, event notification.Event) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Error("Notify: failed to publish %s for id=%d: %v", event.Type, event.AggregateID, err)
	}
}

func parseStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := models.ToDomainBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *raw)
	}
	return &status, nil
}
