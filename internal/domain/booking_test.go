package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired}
	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
		BookingStatusConfirmed: {BookingStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Flags(t *testing.T) {
	assert.True(t, BookingStatusPending.IsActive())
	assert.True(t, BookingStatusConfirmed.IsActive())
	assert.False(t, BookingStatusCancelled.IsActive())
	assert.True(t, BookingStatusExpired.IsTerminal())
	assert.False(t, BookingStatus("UNKNOWN").IsValid())
}

func TestBooking_IsOverdue(t *testing.T) {
	b := &Booking{StartDate: day(0), EndDate: day(3), Status: BookingStatusPending}
	window := 3 * 24 * time.Hour

	assert.False(t, b.IsOverdue(day(3), window))
	assert.True(t, b.IsOverdue(day(3).Add(time.Second), window))

	b.Status = BookingStatusConfirmed
	assert.False(t, b.IsOverdue(day(10), window))
}
