package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PropertyService/pkg/psqlbuilder"
)

// KeyBookingDurationDays ключ длительности бронирования в таблице settings
const KeyBookingDurationDays = "booking_duration_days"

// Repository хранилище административных настроек: key/value таблица settings
// и таблица процентов комиссии по уровням
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает все настройки. Отсутствующие значения заполняются значениями по умолчанию.
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	days, found, err := r.getValue(ctx, KeyBookingDurationDays)
	if err != nil {
		return nil, err
	}
	if found {
		n, err := strconv.Atoi(days)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyBookingDurationDays, days)
		}
		settings.BookingDurationDays = n
	}

	levels, err := r.ListCommissionLevels(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range levels {
		settings.CommissionPercentages[l.Level] = l.Percentage
	}

	return settings, nil
}

func (r *Repository) getValue(ctx context.Context, key string) (string, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: getValue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return "", false, fmt.Errorf("%w: getValue - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("%w: getValue - scan: %v", ErrScanRow, err)
	}
	return value, true, nil
}

// ListCommissionLevels возвращает настроенные уровни по возрастанию
func (r *Repository) ListCommissionLevels(ctx context.Context) ([]domain.CommissionLevel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("level", "percentage").
		From("commission_config").
		OrderBy("level").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommissionLevels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommissionLevels - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	levels := make([]domain.CommissionLevel, 0, domain.MaxCommissionLevels)
	for rows.Next() {
		var l domain.CommissionLevel
		if err := rows.Scan(&l.Level, &l.Percentage); err != nil {
			return nil, fmt.Errorf("%w: ListCommissionLevels - scan row: %v", ErrScanRow, err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCommissionLevels - rows error: %v", ErrScanRow, err)
	}

	return levels, nil
}

// SetBookingDurationDays сохраняет длительность бронирования (upsert)
func (r *Repository) SetBookingDurationDays(ctx context.Context, days int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(KeyBookingDurationDays, strconv.Itoa(days)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetBookingDurationDays - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetBookingDurationDays - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// UpsertCommissionLevel создает или обновляет процент уровня
func (r *Repository) UpsertCommissionLevel(ctx context.Context, level int, percentage decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("commission_config").
		Columns("level", "percentage").
		Values(level, percentage).
		Suffix("ON CONFLICT (level) DO UPDATE SET percentage = EXCLUDED.percentage, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertCommissionLevel - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertCommissionLevel - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteCommissionLevel удаляет уровень. Распределение останавливается на первом отсутствующем уровне.
func (r *Repository) DeleteCommissionLevel(ctx context.Context, level int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("commission_config").
		Where(squirrel.Eq{"level": level}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteCommissionLevel - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCommissionLevel - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCommissionLevel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLevelNotFound
	}
	return nil
}
