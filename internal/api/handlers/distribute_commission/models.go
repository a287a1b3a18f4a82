package distribute_commission

import (
	"time"

	"github.com/shopspring/decimal"

	distributeCommission "github.com/m04kA/SMC-PropertyService/internal/usecase/distribute_commission"
)

// SaleRequest HTTP request model
type SaleRequest struct {
	SaleAmount decimal.Decimal `json:"saleAmount"`
}

// PayoutResponse начисление одному дилеру
type PayoutResponse struct {
	CommissionID int64           `json:"commissionId"`
	DealerID     int64           `json:"dealerId"`
	Level        int             `json:"level"`
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    string          `json:"createdAt"`
}

// SaleResponse HTTP response model
type SaleResponse struct {
	PropertyID int64            `json:"propertyId"`
	SaleAmount decimal.Decimal  `json:"saleAmount"`
	Payouts    []PayoutResponse `json:"payouts"`
	Total      decimal.Decimal  `json:"total"`
}

func FromUseCaseResponse(resp *distributeCommission.Response) *SaleResponse {
	out := &SaleResponse{
		PropertyID: resp.PropertyID,
		SaleAmount: resp.SaleAmount,
		Payouts:    make([]PayoutResponse, 0, len(resp.Payouts)),
		Total:      resp.Total,
	}
	for _, p := range resp.Payouts {
		out.Payouts = append(out.Payouts, PayoutResponse{
			CommissionID: p.CommissionID,
			DealerID:     p.DealerID,
			Level:        p.Level,
			Percentage:   p.Percentage,
			Amount:       p.Amount,
			CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
