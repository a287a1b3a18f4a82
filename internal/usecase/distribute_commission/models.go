package distribute_commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request событие продажи объекта
type Request struct {
	PropertyID int64
	SaleAmount decimal.Decimal
	IsAdmin    bool
}

// Payout начисление одному дилеру
type Payout struct {
	CommissionID int64
	DealerID     int64
	Level        int
	Percentage   decimal.Decimal
	Amount       decimal.Decimal
	CreatedAt    time.Time
}

// Response список начислений, уровень 1 первым
type Response struct {
	PropertyID int64
	SaleAmount decimal.Decimal
	Payouts    []Payout
	Total      decimal.Decimal
}
