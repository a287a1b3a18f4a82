package commission

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PropertyService/pkg/psqlbuilder"
)

// Repository журнал начисленных комиссий (только INSERT)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись о комиссии
func (r *Repository) Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("commissions").
		Columns("dealer_id", "property_id", "amount", "level").
		Values(commission.DealerID, commission.PropertyID, commission.Amount, commission.Level).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&commission.ID, &commission.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return commission, nil
}

// ListByDealerID возвращает комиссии дилера, новые первыми
func (r *Repository) ListByDealerID(ctx context.Context, dealerID int64) ([]*domain.Commission, error) {
	return r.list(ctx, "ListByDealerID", squirrel.Eq{"dealer_id": dealerID})
}

// ListByPropertyID возвращает комиссии по объекту
func (r *Repository) ListByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Commission, error) {
	return r.list(ctx, "ListByPropertyID", squirrel.Eq{"property_id": propertyID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dealer_id", "property_id", "amount", "level", "created_at").
		From("commissions").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	commissions := make([]*domain.Commission, 0)
	for rows.Next() {
		var c domain.Commission
		if err := rows.Scan(&c.ID, &c.DealerID, &c.PropertyID, &c.Amount, &c.Level, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		commissions = append(commissions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return commissions, nil
}
