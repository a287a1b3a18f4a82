package dealer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PropertyService/pkg/psqlbuilder"
)

const (
	uniqueViolation        = "23505"
	constraintUserID       = "dealers_user_id_key"
	constraintReferralCode = "dealers_referral_code_key"
)

var columns = []string{
	"id",
	"user_id",
	"parent_id",
	"referral_code",
	"status",
	"commission",
	"created_at",
	"updated_at",
}

// Repository репозиторий дилеров
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует дилера. parent_id после создания не меняется.
func (r *Repository) Create(ctx context.Context, dealer *domain.Dealer) (*domain.Dealer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("dealers").
		Columns("user_id", "parent_id", "referral_code", "status", "commission").
		Values(dealer.UserID, dealer.ParentID, dealer.ReferralCode, dealer.Status, dealer.Commission).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&dealer.ID, &dealer.CreatedAt, &dealer.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case constraintUserID:
				return nil, fmt.Errorf("%w: user id=%d", ErrDealerExists, dealer.UserID)
			case constraintReferralCode:
				return nil, fmt.Errorf("%w: code=%s", ErrReferralCodeTaken, dealer.ReferralCode)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return dealer, nil
}

// GetByID получает дилера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dealer, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает дилера по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Dealer, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// GetByReferralCode получает дилера по реферальному коду
func (r *Repository) GetByReferralCode(ctx context.Context, code string) (*domain.Dealer, error) {
	return r.getOne(ctx, "GetByReferralCode", squirrel.Eq{"referral_code": code})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Dealer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("dealers").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	dealer, err := scanDealer(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDealerNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return dealer, nil
}

// ListAll загружает всех дилеров одним запросом для построения дерева в памяти
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Dealer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("dealers").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dealers := make([]*domain.Dealer, 0)
	for rows.Next() {
		dealer, err := scanDealer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		dealers = append(dealers, dealer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return dealers, nil
}

// UpdateStatusIfCurrent меняет статус дилера, только если текущий равен from
func (r *Repository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.DealerStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dealers").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfCurrent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatusIfCurrent", query, args, ErrStatusConflict)
}

// AddCommission атомарно увеличивает накопленную комиссию дилера
func (r *Repository) AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dealers").
		Set("commission", squirrel.Expr("commission + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddCommission - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "AddCommission", query, args, ErrDealerNotFound)
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notAffected error) error {
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDealer(row rowScanner) (*domain.Dealer, error) {
	var (
		dealer   domain.Dealer
		parentID sql.NullInt64
	)
	err := row.Scan(
		&dealer.ID,
		&dealer.UserID,
		&parentID,
		&dealer.ReferralCode,
		&dealer.Status,
		&dealer.Commission,
		&dealer.CreatedAt,
		&dealer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		dealer.ParentID = &parentID.Int64
	}
	return &dealer, nil
}
