package commission

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

func TestCreate(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO commissions (dealer_id,property_id,amount,level)")).
		WithArgs(int64(3), int64(9), sqlmock.AnyArg(), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	c, err := repo.Create(context.Background(), &domain.Commission{
		DealerID: 3, PropertyID: 9, Amount: decimal.NewFromInt(50), Level: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDealerID(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM commissions WHERE dealer_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dealer_id", "property_id", "amount", "level", "created_at"}).
			AddRow(int64(11), int64(3), int64(9), "50.00", 1, now))

	list, err := repo.ListByDealerID(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Level)
	assert.True(t, decimal.NewFromInt(50).Equal(list[0].Amount))
}
