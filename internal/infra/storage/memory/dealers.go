package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	dealerRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/dealer"
)

type DealerRepository struct {
	s *Store
}

func (r *DealerRepository) Create(ctx context.Context, dealer *domain.Dealer) (*domain.Dealer, error) {
	defer r.s.lock(ctx)()

	for _, d := range r.s.dealers {
		if d.UserID == dealer.UserID {
			return nil, fmt.Errorf("%w: user id=%d", dealerRepo.ErrDealerExists, dealer.UserID)
		}
		if d.ReferralCode == dealer.ReferralCode {
			return nil, fmt.Errorf("%w: code=%s", dealerRepo.ErrReferralCodeTaken, dealer.ReferralCode)
		}
	}

	r.s.seq.dealer++
	now := time.Now().UTC()
	dealer.ID = r.s.seq.dealer
	dealer.CreatedAt = now
	dealer.UpdatedAt = now
	r.s.dealers[dealer.ID] = *dealer

	out := *dealer
	return &out, nil
}

func (r *DealerRepository) GetByID(ctx context.Context, id int64) (*domain.Dealer, error) {
	return r.find(ctx, func(d domain.Dealer) bool { return d.ID == id })
}

func (r *DealerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Dealer, error) {
	return r.find(ctx, func(d domain.Dealer) bool { return d.UserID == userID })
}

func (r *DealerRepository) GetByReferralCode(ctx context.Context, code string) (*domain.Dealer, error) {
	return r.find(ctx, func(d domain.Dealer) bool { return d.ReferralCode == code })
}

func (r *DealerRepository) find(ctx context.Context, match func(domain.Dealer) bool) (*domain.Dealer, error) {
	defer r.s.lock(ctx)()

	for _, d := range r.s.dealers {
		if match(d) {
			return &d, nil
		}
	}
	return nil, dealerRepo.ErrDealerNotFound
}

func (r *DealerRepository) ListAll(ctx context.Context) ([]*domain.Dealer, error) {
	defer r.s.lock(ctx)()

	out := make([]*domain.Dealer, 0, len(r.s.dealers))
	for _, d := range r.s.dealers {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DealerRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.DealerStatus) error {
	defer r.s.lock(ctx)()

	d, ok := r.s.dealers[id]
	if !ok || d.Status != from {
		return dealerRepo.ErrStatusConflict
	}
	d.Status = to
	d.UpdatedAt = time.Now().UTC()
	r.s.dealers[id] = d
	return nil
}

func (r *DealerRepository) AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error {
	defer r.s.lock(ctx)()

	d, ok := r.s.dealers[id]
	if !ok {
		return dealerRepo.ErrDealerNotFound
	}
	d.Commission = d.Commission.Add(amount)
	d.UpdatedAt = time.Now().UTC()
	r.s.dealers[id] = d
	return nil
}
