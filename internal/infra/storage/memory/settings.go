package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/settings"
)

type SettingsRepository struct {
	s *Store
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	defer r.s.lock(ctx)()

	return &domain.Settings{
		BookingDurationDays:   r.s.settings.BookingDurationDays,
		CommissionPercentages: maps.Clone(r.s.settings.CommissionPercentages),
	}, nil
}

func (r *SettingsRepository) ListCommissionLevels(ctx context.Context) ([]domain.CommissionLevel, error) {
	defer r.s.lock(ctx)()

	levels := slices.Sorted(maps.Keys(r.s.settings.CommissionPercentages))
	out := make([]domain.CommissionLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, domain.CommissionLevel{Level: l, Percentage: r.s.settings.CommissionPercentages[l]})
	}
	return out, nil
}

func (r *SettingsRepository) SetBookingDurationDays(ctx context.Context, days int) error {
	defer r.s.lock(ctx)()

	r.s.settings.BookingDurationDays = days
	return nil
}

func (r *SettingsRepository) UpsertCommissionLevel(ctx context.Context, level int, percentage decimal.Decimal) error {
	defer r.s.lock(ctx)()

	r.s.settings.CommissionPercentages[level] = percentage
	return nil
}

func (r *SettingsRepository) DeleteCommissionLevel(ctx context.Context, level int) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.settings.CommissionPercentages[level]; !ok {
		return settingsRepo.ErrLevelNotFound
	}
	delete(r.s.settings.CommissionPercentages, level)
	return nil
}
