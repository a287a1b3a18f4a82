package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", Interval{day(0), day(3)}, Interval{day(0), day(3)}, true},
		{"partial left", Interval{day(0), day(3)}, Interval{day(2), day(5)}, true},
		{"contained", Interval{day(0), day(10)}, Interval{day(2), day(3)}, true},
		{"back to back", Interval{day(0), day(3)}, Interval{day(3), day(6)}, false},
		{"back to back reversed", Interval{day(3), day(6)}, Interval{day(0), day(3)}, false},
		{"disjoint", Interval{day(0), day(1)}, Interval{day(5), day(6)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, Interval{day(0), day(1)}.IsValid())
	assert.False(t, Interval{day(1), day(1)}.IsValid())
	assert.False(t, Interval{day(2), day(1)}.IsValid())
}

func TestInterval_ConflictsWithIgnoresInactive(t *testing.T) {
	bookings := []*Booking{
		{StartDate: day(0), EndDate: day(3), Status: BookingStatusCancelled},
		{StartDate: day(0), EndDate: day(3), Status: BookingStatusExpired},
	}
	assert.False(t, Interval{day(1), day(2)}.ConflictsWith(bookings))

	bookings = append(bookings, &Booking{StartDate: day(1), EndDate: day(4), Status: BookingStatusPending})
	assert.True(t, Interval{day(1), day(2)}.ConflictsWith(bookings))
}
