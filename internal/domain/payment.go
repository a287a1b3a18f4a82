package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a completed payment for a confirmed booking. It is never modified.
type Payment struct {
	ID          int64
	BookingID   int64
	Amount      decimal.Decimal
	ExternalRef string
	CreatedAt   time.Time
}
