package get_available_slots

import (
	"iter"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	PropertyID int64           `json:"propertyId"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный интервал [startDate, endDate)
type AvailableSlot struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FromSlots материализует последовательность слотов в HTTP response
func FromSlots(propertyID int64, window domain.Interval, slots iter.Seq[domain.Slot]) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		PropertyID: propertyID,
		From:       window.Start.Format(domain.DateFormat),
		To:         window.End.Format(domain.DateFormat),
		Slots:      make([]AvailableSlot, 0),
	}
	for slot := range slots {
		resp.Slots = append(resp.Slots, AvailableSlot{
			StartDate: slot.Start.Format(domain.DateFormat),
			EndDate:   slot.End.Format(domain.DateFormat),
		})
	}
	return resp
}
