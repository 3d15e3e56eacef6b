package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrdersPlaced = "orders.placed"

// OrdersPlacedEvent is published after a checkout commits.
type OrdersPlacedEvent struct {
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id"`
	Orders    []PlacedOrderLine `json:"orders"`
	Total     decimal.Decimal   `json:"total"`
	Timestamp time.Time         `json:"timestamp"`
}

func (e OrdersPlacedEvent) EventName() string { return e.EventType }

type PlacedOrderLine struct {
	OrderID  string          `json:"order_id"`
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// NotificationMessage is the envelope the notification worker consumes
// from its queue.
type NotificationMessage struct {
	Type      string    `json:"type"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
