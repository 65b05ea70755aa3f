package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
)

// Event is emitted after an order is created or changes status.
type Event struct {
	EventType      string          `json:"eventType"`
	OrderID        string          `json:"orderId"`
	Status         Status          `json:"status"`
	PreviousStatus Status          `json:"previousStatus,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Publisher delivers order events. Failures are logged by the service and
// never fail the request.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
