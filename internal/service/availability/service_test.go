package availability

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type fixedDuration int

func (d fixedDuration) GetBookingDurationDays(context.Context) (int, error) { return int(d), nil }

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func setup(t *testing.T) (*Service, *memory.Store, *domain.Property) {
	t.Helper()
	store := memory.NewStore()
	p, err := store.Properties().Create(context.Background(), &domain.Property{
		Status: domain.PropertyStatusFree,
		Price:  decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	return NewService(store.Properties(), store.Bookings(), fixedDuration(3), logger.NewNop()), store, p
}

func addBooking(t *testing.T, store *memory.Store, propertyID int64, start, end string, status domain.BookingStatus) {
	t.Helper()
	_, err := store.Bookings().Create(context.Background(), &domain.Booking{
		PropertyID: propertyID,
		UserID:     1,
		StartDate:  day(start),
		EndDate:    day(end),
		Status:     status,
	})
	require.NoError(t, err)
}

func TestService_HasConflict(t *testing.T) {
	svc, store, p := setup(t)
	ctx := context.Background()
	addBooking(t, store, p.ID, "2024-01-01", "2024-01-04", domain.BookingStatusPending)
	addBooking(t, store, p.ID, "2024-01-10", "2024-01-12", domain.BookingStatusCancelled)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"back to back after", "2024-01-04", "2024-01-07", false},
		{"back to back before", "2023-12-29", "2024-01-01", false},
		{"overlapping tail", "2024-01-03", "2024-01-05", true},
		{"contained", "2024-01-02", "2024-01-03", true},
		{"cancelled booking ignored", "2024-01-10", "2024-01-12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasConflict(ctx, p.ID, domain.Interval{Start: day(tt.start), End: day(tt.end)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_HasConflict_UnknownProperty(t *testing.T) {
	svc, _, _ := setup(t)

	conflict, err := svc.HasConflict(context.Background(), 9999, domain.Interval{Start: day("2024-01-01"), End: day("2024-01-04")})

	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	assert.False(t, conflict)
}

func TestService_HasConflict_InvalidInterval(t *testing.T) {
	svc, _, p := setup(t)

	_, err := svc.HasConflict(context.Background(), p.ID, domain.Interval{Start: day("2024-01-04"), End: day("2024-01-04")})

	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestService_ListAvailableSlots(t *testing.T) {
	svc, store, p := setup(t)
	addBooking(t, store, p.ID, "2024-01-04", "2024-01-07", domain.BookingStatusConfirmed)

	seq, err := svc.ListAvailableSlots(context.Background(), p.ID, day("2024-01-01"), day("2024-01-14"))
	require.NoError(t, err)

	want := []domain.Slot{
		{Start: day("2024-01-01"), End: day("2024-01-04")},
		{Start: day("2024-01-07"), End: day("2024-01-10")},
		{Start: day("2024-01-10"), End: day("2024-01-13")},
	}
	assert.Equal(t, want, slices.Collect(seq))
	// повторный обход дает тот же результат
	assert.Equal(t, want, slices.Collect(seq))
}

func TestService_ListAvailableSlots_Errors(t *testing.T) {
	svc, _, p := setup(t)
	ctx := context.Background()

	_, err := svc.ListAvailableSlots(ctx, 999, day("2024-01-01"), day("2024-01-10"))
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	_, err = svc.ListAvailableSlots(ctx, p.ID, day("2024-01-10"), day("2024-01-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = svc.ListAvailableSlots(ctx, p.ID, day("2024-01-01"), day("2025-01-03"))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}
