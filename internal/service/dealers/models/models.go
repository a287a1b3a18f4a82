package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// RegisterDealerRequest запрос на регистрацию дилера
type RegisterDealerRequest struct {
	UserID       int64   `json:"userId"`
	ReferralCode *string `json:"referralCode,omitempty"`
}

// UpdateStatusRequest решение администратора по заявке дилера
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	IsAdmin bool   `json:"-"`
}

// DealerResponse ответ с данными дилера
type DealerResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	ParentID     *int64          `json:"parentId,omitempty"`
	ReferralCode string          `json:"referralCode"`
	Status       string          `json:"status"`
	Commission   decimal.Decimal `json:"commission"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// DealerNodeResponse узел дерева дилеров с агрегатами по поддереву
type DealerNodeResponse struct {
	DealerResponse
	Depth                 int                   `json:"depth"`
	TotalDescendantCount  int                   `json:"totalDescendantCount"`
	TotalCommissionRollup decimal.Decimal       `json:"totalCommissionRollup"`
	Children              []*DealerNodeResponse `json:"children"`
}

// FromDomainDealer конвертирует domain модель в DTO
func FromDomainDealer(d *domain.Dealer) *DealerResponse {
	if d == nil {
		return nil
	}
	return &DealerResponse{
		ID:           d.ID,
		UserID:       d.UserID,
		ParentID:     d.ParentID,
		ReferralCode: d.ReferralCode,
		Status:       string(d.Status),
		Commission:   d.Commission,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// FromDomainNode конвертирует дерево. Глубина ограничена при построении дерева.
func FromDomainNode(n *domain.DealerNode) *DealerNodeResponse {
	if n == nil {
		return nil
	}
	resp := &DealerNodeResponse{
		DealerResponse:        *FromDomainDealer(n.Dealer),
		Depth:                 n.Depth,
		TotalDescendantCount:  n.TotalDescendantCount,
		TotalCommissionRollup: n.TotalCommissionRollup,
		Children:              make([]*DealerNodeResponse, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		resp.Children = append(resp.Children, FromDomainNode(c))
	}
	return resp
}
