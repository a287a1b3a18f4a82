package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PropertyService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"owner_id",
	"dealer_id",
	"title",
	"status",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий объектов недвижимости
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает объект недвижимости
func (r *Repository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("properties").
		Columns("owner_id", "dealer_id", "title", "status", "price").
		Values(property.OwnerID, property.DealerID, property.Title, property.Status, property.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return property, nil
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает объект и блокирует строку (SELECT ... FOR UPDATE).
// Все операции, меняющие календарь объекта, сначала берут эту блокировку.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("properties").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		property domain.Property
		dealerID sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&property.ID,
		&property.OwnerID,
		&dealerID,
		&property.Title,
		&property.Status,
		&property.Price,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	if dealerID.Valid {
		property.DealerID = &dealerID.Int64
	}

	return &property, nil
}

// UpdateStatus безусловно меняет статус (административное переопределение)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error {
	return r.updateStatus(ctx, "UpdateStatus", squirrel.Eq{"id": id}, status, ErrPropertyNotFound)
}

// UpdateStatusIfCurrent меняет статус, только если текущий равен from
func (r *Repository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.PropertyStatus) error {
	return r.updateStatus(ctx, "UpdateStatusIfCurrent", squirrel.Eq{"id": id, "status": from}, to, ErrStatusConflict)
}

func (r *Repository) updateStatus(ctx context.Context, op string, where squirrel.Eq, status domain.PropertyStatus, notAffected error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("properties").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}
