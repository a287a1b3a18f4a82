package domain

import (
	"iter"
	"time"
)

// Slot is a candidate booking interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// AvailableSlots lazily tiles [window.Start, window.End] with consecutive slots of durationDays
// and yields those that do not overlap any active booking. Slots ending after window.End are dropped.
// The sequence is restartable: each range over it starts again from window.Start.
func AvailableSlots(window Interval, durationDays int, bookings []*Booking) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if durationDays <= 0 || !window.IsValid() {
			return
		}
		for start := window.Start; ; {
			end := start.AddDate(0, 0, durationDays)
			if end.After(window.End) {
				return
			}
			slot := Slot{Start: start, End: end}
			if !slot.Interval().ConflictsWith(bookings) {
				if !yield(slot) {
					return
				}
			}
			start = end
		}
	}
}
