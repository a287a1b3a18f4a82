package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/payment"
)

type PaymentRepository struct {
	s *Store
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	defer r.s.lock(ctx)()

	for _, p := range r.s.payments {
		if p.BookingID == payment.BookingID {
			return nil, fmt.Errorf("%w: booking id=%d", paymentRepo.ErrPaymentExists, payment.BookingID)
		}
	}

	r.s.seq.payment++
	payment.ID = r.s.seq.payment
	payment.CreatedAt = time.Now().UTC()
	r.s.payments[payment.ID] = *payment

	out := *payment
	return &out, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	defer r.s.lock(ctx)()

	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

// Count returns the number of stored payments.
func (r *PaymentRepository) Count(ctx context.Context) int {
	defer r.s.lock(ctx)()
	return len(r.s.payments)
}
