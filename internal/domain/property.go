package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PropertyStatus string

const (
	PropertyStatusFree   PropertyStatus = "FREE"
	PropertyStatusBooked PropertyStatus = "BOOKED"
	PropertyStatusSold   PropertyStatus = "SOLD"
)

// Property is a bookable listing. DealerID is the dealer credited with its sale.
type Property struct {
	ID        int64
	OwnerID   int64
	DealerID  *int64
	Title     string
	Status    PropertyStatus
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Property) IsFree() bool {
	return p.Status == PropertyStatusFree
}

func (s PropertyStatus) IsValid() bool {
	return s == PropertyStatusFree || s == PropertyStatusBooked || s == PropertyStatusSold
}
