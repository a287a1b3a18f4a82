package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type CommissionRepository struct {
	s *Store
}

func (r *CommissionRepository) Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error) {
	defer r.s.lock(ctx)()

	r.s.seq.commission++
	commission.ID = r.s.seq.commission
	commission.CreatedAt = time.Now().UTC()
	r.s.commissions = append(r.s.commissions, *commission)

	out := *commission
	return &out, nil
}

func (r *CommissionRepository) ListByDealerID(ctx context.Context, dealerID int64) ([]*domain.Commission, error) {
	return r.list(ctx, func(c domain.Commission) bool { return c.DealerID == dealerID }), nil
}

func (r *CommissionRepository) ListByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Commission, error) {
	return r.list(ctx, func(c domain.Commission) bool { return c.PropertyID == propertyID }), nil
}

// list returns newest first, like the SQL repository.
func (r *CommissionRepository) list(ctx context.Context, match func(domain.Commission) bool) []*domain.Commission {
	defer r.s.lock(ctx)()

	out := make([]*domain.Commission, 0)
	for i := len(r.s.commissions) - 1; i >= 0; i-- {
		c := r.s.commissions[i]
		if match(c) {
			out = append(out, &c)
		}
	}
	return out
}
