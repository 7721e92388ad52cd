package kafka

import (
	"strconv"
	"time"

	"yoyo-delivery/internal/events"
)

// EventDTO is the wire form of events.Event
type EventDTO struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"orderId"`
	Status    string    `json:"status"`
	From      string    `json:"from,omitempty"`
	CourierID *int64    `json:"courierId,omitempty"`
	At        time.Time `json:"at"`
}

// FromDomain converts events.Event to EventDTO
func FromDomain(ev events.Event) EventDTO {
	return EventDTO{
		Type:      string(ev.Type),
		OrderID:   ev.OrderID,
		Status:    string(ev.Status),
		From:      string(ev.From),
		CourierID: ev.CourierID,
		At:        ev.At.UTC(),
	}
}

// messageKey keeps all events of one order on the same partition.
func messageKey(ev events.Event) string {
	return strconv.FormatInt(ev.OrderID, 10)
}
