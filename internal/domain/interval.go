package domain

import "time"

// Interval is the half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
// Back-to-back intervals (one ends where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// ConflictsWith reports whether any active booking overlaps the interval.
func (i Interval) ConflictsWith(bookings []*Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if i.Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}
