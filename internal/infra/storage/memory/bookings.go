package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
)

type BookingRepository struct {
	s *Store
}

// Create mirrors the bookings_no_overlap exclusion constraint.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	if booking.Status.IsActive() {
		for _, b := range r.s.bookings {
			if b.PropertyID == booking.PropertyID && b.IsActive() && b.Interval().Overlaps(booking.Interval()) {
				return nil, fmt.Errorf("%w: Create - property id=%d", bookingRepo.ErrOverlap, booking.PropertyID)
			}
		}
	}

	r.s.seq.booking++
	now := time.Now().UTC()
	booking.ID = r.s.seq.booking
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.bookings[booking.ID] = *booking

	out := *booking
	return &out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := r.filter(ctx, func(b domain.Booking) bool {
		return b.UserID == userID && (status == nil || b.Status == *status)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *BookingRepository) GetByPropertyID(ctx context.Context, propertyID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.filter(ctx, func(b domain.Booking) bool {
		return b.PropertyID == propertyID && (status == nil || b.Status == *status)
	}), nil
}

func (r *BookingRepository) ListActiveByPropertyInRange(ctx context.Context, propertyID int64, window domain.Interval) ([]*domain.Booking, error) {
	return r.filter(ctx, func(b domain.Booking) bool {
		return b.PropertyID == propertyID && b.IsActive() && b.Interval().Overlaps(window)
	}), nil
}

func (r *BookingRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok || !slices.Contains(from, b.Status) {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) ExpirePending(ctx context.Context, cutoff time.Time) ([]int64, error) {
	defer r.s.lock(ctx)()

	ids := make([]int64, 0)
	now := time.Now().UTC()
	for id, b := range r.s.bookings {
		if b.Status == domain.BookingStatusPending && b.StartDate.Before(cutoff) {
			b.Status = domain.BookingStatusExpired
			b.UpdatedAt = now
			r.s.bookings[id] = b
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// filter returns matching bookings ordered by start date, then id.
func (r *BookingRepository) filter(ctx context.Context, match func(domain.Booking) bool) []*domain.Booking {
	defer r.s.lock(ctx)()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if match(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
