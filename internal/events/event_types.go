package events

import (
	"time"

	"github.com/spec-kit/travel-order-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTravelOrderCreated       EventType = "travel_order.created"
	EventTravelOrderStatusChanged EventType = "travel_order.status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderID   int64       `json:"order_id"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TravelOrderCreatedPayload payload.
type TravelOrderCreatedPayload struct {
	Destiny string             `json:"destiny"`
	Status  domain.OrderStatus `json:"status"`
}

// TravelOrderStatusChangedPayload payload.
type TravelOrderStatusChangedPayload struct {
	Destiny   string             `json:"destiny"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
