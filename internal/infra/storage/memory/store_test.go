package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
)

var d0 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestStore_RollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, err := s.Properties().Create(ctx, &domain.Property{Status: domain.PropertyStatusFree, Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Properties().UpdateStatus(ctx, p.ID, domain.PropertyStatusBooked))
		_, err := s.Bookings().Create(ctx, &domain.Booking{
			PropertyID: p.ID, StartDate: d0, EndDate: d0.AddDate(0, 0, 3), Status: domain.BookingStatusConfirmed,
		})
		require.NoError(t, err)
		require.NoError(t, s.Settings().UpsertCommissionLevel(ctx, 1, decimal.NewFromInt(10)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Properties().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusFree, got.Status)

	list, err := s.Bookings().GetByPropertyID(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	settings, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings.CommissionPercentages)
}

func TestStore_NestedDoJoinsTransaction(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Do(ctx, func(ctx context.Context) error {
		return s.DoSerializable(ctx, func(ctx context.Context) error {
			_, err := s.Properties().Create(ctx, &domain.Property{Status: domain.PropertyStatusFree})
			return err
		})
	})

	require.NoError(t, err)
	_, err = s.Properties().GetByID(ctx, 1)
	assert.NoError(t, err)
}

func TestBookings_OverlapConstraint(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Bookings()

	_, err := repo.Create(ctx, &domain.Booking{PropertyID: 1, StartDate: d0, EndDate: d0.AddDate(0, 0, 3), Status: domain.BookingStatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Booking{PropertyID: 1, StartDate: d0.AddDate(0, 0, 2), EndDate: d0.AddDate(0, 0, 4), Status: domain.BookingStatusPending})
	assert.ErrorIs(t, err, bookingRepo.ErrOverlap)

	_, err = repo.Create(ctx, &domain.Booking{PropertyID: 1, StartDate: d0.AddDate(0, 0, 3), EndDate: d0.AddDate(0, 0, 6), Status: domain.BookingStatusPending})
	assert.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Booking{PropertyID: 2, StartDate: d0, EndDate: d0.AddDate(0, 0, 3), Status: domain.BookingStatusPending})
	assert.NoError(t, err)
}

func TestBookings_ExpirePending(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Bookings()

	old, _ := repo.Create(ctx, &domain.Booking{PropertyID: 1, StartDate: d0, EndDate: d0.AddDate(0, 0, 3), Status: domain.BookingStatusPending})
	_, _ = repo.Create(ctx, &domain.Booking{PropertyID: 2, StartDate: d0, EndDate: d0.AddDate(0, 0, 3), Status: domain.BookingStatusConfirmed})
	_, _ = repo.Create(ctx, &domain.Booking{PropertyID: 3, StartDate: d0.AddDate(0, 0, 10), EndDate: d0.AddDate(0, 0, 13), Status: domain.BookingStatusPending})

	ids, err := repo.ExpirePending(ctx, d0.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, []int64{old.ID}, ids)
	got, _ := repo.GetByID(ctx, old.ID)
	assert.Equal(t, domain.BookingStatusExpired, got.Status)
}

func TestProperties_UpdateStatusIfCurrent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, _ := s.Properties().Create(ctx, &domain.Property{Status: domain.PropertyStatusFree})

	assert.ErrorIs(t, s.Properties().UpdateStatusIfCurrent(ctx, p.ID, domain.PropertyStatusBooked, domain.PropertyStatusFree),
		propertyRepo.ErrStatusConflict)
	assert.NoError(t, s.Properties().UpdateStatusIfCurrent(ctx, p.ID, domain.PropertyStatusFree, domain.PropertyStatusBooked))
}

func TestStore_ConcurrentTransactionsAreSerialized(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	d, err := s.Dealers().Create(ctx, &domain.Dealer{UserID: 1, ReferralCode: "A", Commission: decimal.Zero})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(ctx, func(ctx context.Context) error {
				return s.Dealers().AddCommission(ctx, d.ID, decimal.NewFromInt(2))
			})
		}()
	}
	wg.Wait()

	got, err := s.Dealers().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Commission))
}
