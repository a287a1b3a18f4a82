package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

var (
	start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end   = start.AddDate(0, 0, 3)
	now   = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
)

func bookingRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(int64(7), int64(1), int64(100), start, end, "PENDING", now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (property_id,user_id,start_date,end_date,status)")).
		WithArgs(int64(1), int64(100), start, end, "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{
		PropertyID: 1, UserID: 100, StartDate: start, EndDate: end, Status: domain.BookingStatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolation(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: exclusionViolation, Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), &domain.Booking{PropertyID: 1, UserID: 1, StartDate: start, EndDate: end})

	assert.ErrorIs(t, err, ErrOverlap)
}

func TestCreate_OtherError(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{PropertyID: 1})

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(bookingRow())

		b, err := repo.GetByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, start, b.StartDate)
		assert.Equal(t, end, b.EndDate)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), 7)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("for update", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 FOR UPDATE")).WillReturnRows(bookingRow())

		_, err := repo.GetByIDForUpdate(context.Background(), 7)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListActiveByPropertyInRange(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE (property_id = $1 AND status IN ($2,$3) AND start_date < $4 AND end_date > $5) ORDER BY start_date, id")).
		WithArgs(int64(1), "PENDING", "CONFIRMED", end, start).
		WillReturnRows(bookingRow())

	bookings, err := repo.ListActiveByPropertyInRange(context.Background(), 1, domain.Interval{Start: start, End: end})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(7), bookings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfCurrent(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE \(?id = \$2 AND status IN \(\$3\)\)?`).
			WithArgs("CONFIRMED", int64(7), "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusIfCurrent(context.Background(), 7,
			[]domain.BookingStatus{domain.BookingStatusPending}, domain.BookingStatusConfirmed)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost race", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatusIfCurrent(context.Background(), 7,
			[]domain.BookingStatus{domain.BookingStatusPending}, domain.BookingStatusConfirmed)

		assert.ErrorIs(t, err, ErrStatusConflict)
	})
}

func TestExpirePending(t *testing.T) {
	repo, mock := setupRepo(t)
	cutoff := now.AddDate(0, 0, -3)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE status = $2 AND start_date < $3 RETURNING id")).
		WithArgs("EXPIRED", "PENDING", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(9)))

	ids, err := repo.ExpirePending(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
