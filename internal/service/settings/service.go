package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-PropertyService/internal/service/settings/models"
)

// Service сервис настроек движка: длительность бронирования и таблица комиссий
type Service struct {
	repo      SettingsRepository
	cache     SettingsCache
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек.
// cache может быть nil, тогда все чтения идут в репозиторий.
func NewService(repo SettingsRepository, cache SettingsCache, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// Snapshot возвращает актуальные настройки.
// Сначала читает кэш, при промахе или недоступности Redis идет в репозиторий.
func (s *Service) Snapshot(ctx context.Context) (*domain.Settings, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.Warn("Snapshot: cache unavailable, falling back to repository: %v", err)
		case found:
			return normalize(cached), nil
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Snapshot: repository error: %v", err)
		return nil, fmt.Errorf("%w: Snapshot - repository error: %v", ErrInternal, err)
	}
	settings = normalize(settings)

	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			s.logger.Warn("Snapshot: failed to populate cache: %v", err)
		}
	}

	return settings, nil
}

// GetBookingDurationDays длительность бронирования в днях, по умолчанию 3
func (s *Service) GetBookingDurationDays(ctx context.Context) (int, error) {
	settings, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return settings.BookingDurationDays, nil
}

// GetCommissionPercentage процент для уровня. false, если уровень не настроен.
func (s *Service) GetCommissionPercentage(ctx context.Context, level int) (decimal.Decimal, bool, error) {
	settings, err := s.Snapshot(ctx)
	if err != nil {
		return decimal.Zero, false, err
	}
	pct, ok := settings.CommissionPercentage(level)
	return pct, ok, nil
}

// Get настройки в виде DTO
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// SetBookingDurationDays устанавливает длительность бронирования (1..365 дней)
func (s *Service) SetBookingDurationDays(ctx context.Context, days int) error {
	return s.Update(ctx, &models.UpdateSettingsRequest{BookingDurationDays: &days})
}

// UpsertCommissionLevel создает или обновляет процент уровня (уровень 1..3, процент 0..100)
func (s *Service) UpsertCommissionLevel(ctx context.Context, level int, percentage decimal.Decimal) error {
	return s.Update(ctx, &models.UpdateSettingsRequest{
		CommissionLevels: []models.CommissionLevel{{Level: level, Percentage: percentage}},
	})
}

// DeleteCommissionLevel удаляет уровень, цепочка выплат будет обрываться на нем
func (s *Service) DeleteCommissionLevel(ctx context.Context, level int) error {
	return s.Update(ctx, &models.UpdateSettingsRequest{RemoveLevels: []int{level}})
}

// Update применяет изменения настроек в одной транзакции и сбрасывает кэш
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) error {
	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.BookingDurationDays != nil {
			if err := s.repo.SetBookingDurationDays(txCtx, *req.BookingDurationDays); err != nil {
				return fmt.Errorf("%w: failed to set booking duration: %v", ErrInternal, err)
			}
		}

		for _, l := range req.CommissionLevels {
			if err := s.repo.UpsertCommissionLevel(txCtx, l.Level, l.Percentage); err != nil {
				return fmt.Errorf("%w: failed to upsert commission level %d: %v", ErrInternal, l.Level, err)
			}
		}

		for _, level := range req.RemoveLevels {
			if err := s.repo.DeleteCommissionLevel(txCtx, level); err != nil {
				if errors.Is(err, settingsRepo.ErrLevelNotFound) {
					return fmt.Errorf("%w: level %d", ErrLevelNotFound, level)
				}
				return fmt.Errorf("%w: failed to delete commission level %d: %v", ErrInternal, level, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLevelNotFound) {
			s.logger.Warn("Update: %v", err)
		} else {
			s.logger.Error("Update: %v", err)
		}
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Update: settings updated, duration=%v, upserted=%d, removed=%v",
		req.BookingDurationDays, len(req.CommissionLevels), req.RemoveLevels)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		// снапшот доживет до TTL
		s.logger.Warn("Update: failed to invalidate settings cache: %v", err)
	}
}

func validateUpdate(req *models.UpdateSettingsRequest) error {
	if req == nil || req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if d := req.BookingDurationDays; d != nil {
		if *d < domain.MinBookingDurationDays || *d > domain.MaxBookingDurationDays {
			return fmt.Errorf("%w: bookingDurationDays must be in [%d, %d], got %d",
				ErrInvalidInput, domain.MinBookingDurationDays, domain.MaxBookingDurationDays, *d)
		}
	}

	seen := make(map[int]struct{}, len(req.CommissionLevels))
	for _, l := range req.CommissionLevels {
		if !domain.IsValidCommissionLevel(l.Level) {
			return fmt.Errorf("%w: commission level must be in [1, %d], got %d", ErrInvalidInput, domain.MaxCommissionLevels, l.Level)
		}
		if !domain.IsValidPercentage(l.Percentage) {
			return fmt.Errorf("%w: percentage must be in [0, 100], got %s", ErrInvalidInput, l.Percentage)
		}
		if _, dup := seen[l.Level]; dup {
			return fmt.Errorf("%w: commission level %d listed twice", ErrInvalidInput, l.Level)
		}
		seen[l.Level] = struct{}{}
	}

	for _, level := range req.RemoveLevels {
		if _, both := seen[level]; both {
			return fmt.Errorf("%w: commission level %d is both updated and removed", ErrInvalidInput, level)
		}
	}

	return nil
}

// normalize подставляет длительность по умолчанию вместо непроставленной
func normalize(settings *domain.Settings) *domain.Settings {
	if settings.BookingDurationDays <= 0 {
		settings.BookingDurationDays = domain.DefaultBookingDurationDays
	}
	return settings
}
