// Package events describes order lifecycle notifications and how they are published.
package events

import (
	"context"
	"time"

	"yoyo-delivery/internal/domain"
)

// Type names a lifecycle event.
type Type string

const (
	TypeOrderCreated  Type = "order.created"
	TypeStatusChanged Type = "order.status_changed"
)

// Event is emitted after an order mutation has been persisted.
type Event struct {
	Type      Type               `json:"type"`
	OrderID   int64              `json:"orderId"`
	Status    domain.OrderStatus `json:"status"`
	From      domain.OrderStatus `json:"from,omitempty"`
	CourierID *int64             `json:"courierId,omitempty"`
	At        time.Time          `json:"at"`
}

// Publisher delivers events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }
