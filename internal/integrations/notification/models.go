package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType тип доменного события
type EventType string

const (
	EventBookingCreated        EventType = "booking.created"
	EventBookingConfirmed      EventType = "booking.confirmed"
	EventBookingCancelled      EventType = "booking.cancelled"
	EventBookingExpired        EventType = "booking.expired"
	EventCommissionPaid        EventType = "commission.paid"
)

// Event событие, публикуемое после коммита транзакции
type Event struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	AggregateID int64          `json:"aggregate_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// NewEvent создает событие с новым ID
func NewEvent(eventType EventType, aggregateID int64, payload map[string]any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

// Stream booking или commission, по префиксу типа
func (e Event) Stream() string {
	stream, _, _ := strings.Cut(string(e.Type), ".")
	return stream
}
