package availability

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
)

// Service проверка пересечений и поиск свободных слотов
type Service struct {
	propertyRepo PropertyRepository
	bookingRepo  BookingRepository
	settings     SettingsProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	propertyRepo PropertyRepository,
	bookingRepo BookingRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		settings:     settings,
		logger:       logger,
	}
}

// HasConflict проверяет, пересекается ли [start, end) с активным бронированием объекта.
// Бронирования встык не конфликтуют.
// Внутри транзакции видит собственные незакоммиченные записи.
func (s *Service) HasConflict(ctx context.Context, propertyID int64, interval domain.Interval) (bool, error) {
	if !interval.IsValid() {
		return false, ErrInvalidInterval
	}

	if err := s.ensureProperty(ctx, "HasConflict", propertyID); err != nil {
		return false, err
	}

	bookings, err := s.bookingRepo.ListActiveByPropertyInRange(ctx, propertyID, interval)
	if err != nil {
		s.logger.Error("HasConflict: repository error for property=%d: %v", propertyID, err)
		return false, fmt.Errorf("%w: HasConflict - repository error: %v", ErrInternal, err)
	}

	return interval.ConflictsWith(bookings), nil
}

// ListAvailableSlots возвращает ленивую последовательность свободных слотов в [from, to].
// Шаг равен длительности бронирования из настроек. Последовательность можно обходить повторно,
// она работает со снимком бронирований, прочитанным при вызове.
func (s *Service) ListAvailableSlots(ctx context.Context, propertyID int64, from, to time.Time) (iter.Seq[domain.Slot], error) {
	window := domain.Interval{Start: from, End: to}
	if !window.IsValid() {
		s.logger.Warn("ListAvailableSlots: invalid window %s - %s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))
		return nil, ErrInvalidInterval
	}
	if to.Sub(from) > domain.MaxSlotSearchDays*24*time.Hour {
		s.logger.Warn("ListAvailableSlots: window exceeds %d days", domain.MaxSlotSearchDays)
		return nil, fmt.Errorf("%w: search window exceeds %d days", ErrInvalidInterval, domain.MaxSlotSearchDays)
	}

	if err := s.ensureProperty(ctx, "ListAvailableSlots", propertyID); err != nil {
		return nil, err
	}

	durationDays, err := s.settings.GetBookingDurationDays(ctx)
	if err != nil {
		s.logger.Error("ListAvailableSlots: failed to get booking duration: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking duration: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListActiveByPropertyInRange(ctx, propertyID, window)
	if err != nil {
		s.logger.Error("ListAvailableSlots: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: ListAvailableSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailableSlots: property=%d, window=%s - %s, duration=%dd, active bookings=%d",
		propertyID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), durationDays, len(bookings))

	return domain.AvailableSlots(window, durationDays, bookings), nil
}

func (s *Service) ensureProperty(ctx context.Context, op string, propertyID int64) error {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("%s: property id=%d not found", op, propertyID)
			return ErrPropertyNotFound
		}
		s.logger.Error("%s: repository error for property=%d: %v", op, propertyID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
