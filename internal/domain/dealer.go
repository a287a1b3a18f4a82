package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DealerStatus string

const (
	DealerStatusPending  DealerStatus = "PENDING"
	DealerStatusApproved DealerStatus = "APPROVED"
	DealerStatusRejected DealerStatus = "REJECTED"
)

// Dealer is a node of the referral forest. ParentID is set once at signup.
type Dealer struct {
	ID           int64
	UserID       int64
	ParentID     *int64
	ReferralCode string
	Status       DealerStatus
	Commission   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (d *Dealer) IsRoot() bool {
	return d.ParentID == nil
}

func (s DealerStatus) IsValid() bool {
	return s == DealerStatusPending || s == DealerStatusApproved || s == DealerStatusRejected
}

// CanTransitionTo allows an admin to decide on a pending dealer exactly once.
func (s DealerStatus) CanTransitionTo(next DealerStatus) bool {
	return s == DealerStatusPending && (next == DealerStatusApproved || next == DealerStatusRejected)
}

// DealerNode is a dealer with its materialised subtree and rolled-up totals.
type DealerNode struct {
	Dealer   *Dealer
	Depth    int
	Children []*DealerNode
	// TotalDescendantCount includes the node itself.
	TotalDescendantCount  int
	TotalCommissionRollup decimal.Decimal
}
