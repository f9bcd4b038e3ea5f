package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOrderStatusApplied  = "order.status_applied"
	EventTypeOrderStatusReverted = "order.status_reverted"
)

// OrderStatusEvent reports the outcome of a status change sent to the
// backend.
type OrderStatusEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	DisplayID string `json:"display_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Reason    string `json:"reason,omitempty"`
}

func NewOrderStatusEvent(eventType, orderID, displayID, from, to, reason string) *OrderStatusEvent {
	return &OrderStatusEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"display_id": displayID,
				"from":       from,
				"to":         to,
				"reason":     reason,
			},
		},
		OrderID:   orderID,
		DisplayID: displayID,
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
