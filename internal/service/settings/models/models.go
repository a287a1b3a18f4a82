package models

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// CommissionLevel уровень комиссии в запросах и ответах
type CommissionLevel struct {
	Level      int             `json:"level"`
	Percentage decimal.Decimal `json:"percentage"`
}

// UpdateSettingsRequest частичное обновление настроек.
// Все изменения применяются в одной транзакции.
type UpdateSettingsRequest struct {
	BookingDurationDays *int              `json:"bookingDurationDays,omitempty"`
	CommissionLevels    []CommissionLevel `json:"commissionLevels,omitempty"`
	RemoveLevels        []int             `json:"removeLevels,omitempty"`
}

// IsEmpty true, если запрос ничего не меняет
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.BookingDurationDays == nil && len(r.CommissionLevels) == 0 && len(r.RemoveLevels) == 0
}

// SettingsResponse ответ с текущими настройками
type SettingsResponse struct {
	BookingDurationDays int               `json:"bookingDurationDays"`
	CommissionLevels    []CommissionLevel `json:"commissionLevels"`
}

// FromDomainSettings конвертирует domain модель в DTO, уровни по возрастанию
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}

	levels := slices.Sorted(maps.Keys(s.CommissionPercentages))
	resp := &SettingsResponse{
		BookingDurationDays: s.BookingDurationDays,
		CommissionLevels:    make([]CommissionLevel, 0, len(levels)),
	}
	for _, l := range levels {
		resp.CommissionLevels = append(resp.CommissionLevels, CommissionLevel{Level: l, Percentage: s.CommissionPercentages[l]})
	}
	return resp
}
