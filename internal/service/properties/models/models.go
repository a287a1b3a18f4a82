package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// CreatePropertyRequest запрос на создание объекта
type CreatePropertyRequest struct {
	OwnerID  int64           `json:"-"`
	DealerID *int64          `json:"dealerId,omitempty"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateStatusRequest ручная смена статуса администратором
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	IsAdmin bool   `json:"-"`
}

// PropertyResponse ответ с данными объекта
type PropertyResponse struct {
	ID        int64           `json:"id"`
	OwnerID   int64           `json:"ownerId"`
	DealerID  *int64          `json:"dealerId,omitempty"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FromDomainProperty конвертирует domain модель в DTO
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	if p == nil {
		return nil
	}
	return &PropertyResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		DealerID:  p.DealerID,
		Title:     p.Title,
		Status:    string(p.Status),
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
