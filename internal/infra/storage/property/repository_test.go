package property

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
)

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestGetByIDForUpdate(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM properties WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), int64(10), int64(3), "Loft", "FREE", "1500.00", now, now))

	p, err := repo.GetByIDForUpdate(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusFree, p.Status)
	require.NotNil(t, p.DealerID)
	assert.Equal(t, int64(3), *p.DealerID)
	assert.True(t, decimal.RequireFromString("1500").Equal(p.Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NoDealer(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM properties").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), int64(10), nil, "Loft", "BOOKED", "10", now, now))

	p, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Nil(t, p.DealerID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("FROM properties").WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestUpdateStatusIfCurrent(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`UPDATE properties SET status = \$1, updated_at = NOW\(\) WHERE \(?id = \$2 AND status = \$3\)?`).
		WithArgs("FREE", int64(5), "BOOKED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusIfCurrent(context.Background(), 5, domain.PropertyStatusBooked, domain.PropertyStatusFree)

	assert.ErrorIs(t, err, ErrStatusConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec("UPDATE properties").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, domain.PropertyStatusSold)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
