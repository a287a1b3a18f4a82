package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

type txKey struct{}

// Store is an in-memory implementation of every repository the service uses.
// Transactions are serialized by a single mutex and rolled back by restoring a snapshot,
// so a failed callback leaves no partial writes behind.
type Store struct {
	mu sync.Mutex

	properties  map[int64]domain.Property
	bookings    map[int64]domain.Booking
	payments    map[int64]domain.Payment
	dealers     map[int64]domain.Dealer
	commissions []domain.Commission
	settings    domain.Settings

	seq sequences
}

type sequences struct {
	property, booking, payment, dealer, commission int64
}

type snapshot struct {
	properties  map[int64]domain.Property
	bookings    map[int64]domain.Booking
	payments    map[int64]domain.Payment
	dealers     map[int64]domain.Dealer
	commissions []domain.Commission
	settings    domain.Settings
	seq         sequences
}

func NewStore() *Store {
	return &Store{
		properties: make(map[int64]domain.Property),
		bookings:   make(map[int64]domain.Booking),
		payments:   make(map[int64]domain.Payment),
		dealers:    make(map[int64]domain.Dealer),
		settings:   *domain.DefaultSettings(),
	}
}

// Do runs fn as one transaction. Nested calls join the outer transaction.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// DoSerializable is Do: memory transactions are already fully serialized.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires the store for a single statement unless ctx already holds the transaction.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		properties:  maps.Clone(s.properties),
		bookings:    maps.Clone(s.bookings),
		payments:    maps.Clone(s.payments),
		dealers:     maps.Clone(s.dealers),
		commissions: slices.Clone(s.commissions),
		settings: domain.Settings{
			BookingDurationDays:   s.settings.BookingDurationDays,
			CommissionPercentages: maps.Clone(s.settings.CommissionPercentages),
		},
		seq: s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.properties = snap.properties
	s.bookings = snap.bookings
	s.payments = snap.payments
	s.dealers = snap.dealers
	s.commissions = snap.commissions
	s.settings = snap.settings
	s.seq = snap.seq
}

func (s *Store) Properties() *PropertyRepository   { return &PropertyRepository{s: s} }
func (s *Store) Bookings() *BookingRepository       { return &BookingRepository{s: s} }
func (s *Store) Payments() *PaymentRepository       { return &PaymentRepository{s: s} }
func (s *Store) Dealers() *DealerRepository         { return &DealerRepository{s: s} }
func (s *Store) Commissions() *CommissionRepository { return &CommissionRepository{s: s} }
func (s *Store) Settings() *SettingsRepository      { return &SettingsRepository{s: s} }
