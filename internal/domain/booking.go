package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// Booking is a reservation of a property for the half-open interval [StartDate, EndDate).
type Booking struct {
	ID         int64
	PropertyID int64
	UserID     int64
	StartDate  time.Time
	EndDate    time.Time
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Interval returns the occupied period of the booking.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartDate, End: b.EndDate}
}

// IsActive returns true if the booking holds the property's calendar
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeConfirmed returns true if the booking is still awaiting payment
func (b *Booking) CanBeConfirmed() bool {
	return b.Status.CanTransitionTo(BookingStatusConfirmed)
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(BookingStatusCancelled)
}

// IsOverdue reports whether a pending booking has outlived its payment window.
func (b *Booking) IsOverdue(now time.Time, window time.Duration) bool {
	return b.Status == BookingStatusPending && b.StartDate.Add(window).Before(now)
}

func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// IsTerminal returns true for statuses that allow no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusExpired
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking state machine:
// PENDING -> CONFIRMED | CANCELLED | EXPIRED, CONFIRMED -> CANCELLED.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled || next == BookingStatusExpired
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

// ActiveBookingStatuses are the statuses that block a property's calendar.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
}
