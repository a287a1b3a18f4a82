package domain

import "github.com/shopspring/decimal"

// Settings is the admin-managed runtime configuration of the engine.
type Settings struct {
	BookingDurationDays int
	// CommissionPercentages is keyed by level. A missing level ends the payout chain.
	CommissionPercentages map[int]decimal.Decimal
}

// CommissionPercentage returns the configured percentage for level, if any.
func (s *Settings) CommissionPercentage(level int) (decimal.Decimal, bool) {
	pct, ok := s.CommissionPercentages[level]
	return pct, ok
}

// DefaultSettings is used when nothing has been configured yet.
func DefaultSettings() *Settings {
	return &Settings{
		BookingDurationDays:   DefaultBookingDurationDays,
		CommissionPercentages: map[int]decimal.Decimal{},
	}
}
