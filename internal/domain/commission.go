package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission is an append-only payout to a dealer for a property sale.
type Commission struct {
	ID         int64
	DealerID   int64
	PropertyID int64
	Amount     decimal.Decimal
	Level      int
	CreatedAt  time.Time
}

// CommissionLevel is one row of the admin-managed commission table.
type CommissionLevel struct {
	Level      int
	Percentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// CommissionAmount returns saleAmount * percentage / 100 rounded half away from zero to cents.
func CommissionAmount(saleAmount, percentage decimal.Decimal) decimal.Decimal {
	return saleAmount.Mul(percentage).Div(hundred).Round(MoneyScale)
}

func IsValidCommissionLevel(level int) bool {
	return level >= 1 && level <= MaxCommissionLevels
}

func IsValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
