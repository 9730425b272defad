package domain

import "time"

type OrderEventType string

const (
	OrderEventCreated     OrderEventType = "order.created"
	OrderEventItemAdded   OrderEventType = "order.item_added"
	OrderEventItemRemoved OrderEventType = "order.item_removed"
	OrderEventDeleted     OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"order_id"`
	CustomerID string         `json:"customer_id,omitempty"`
	ProductID  string         `json:"product_id,omitempty"`
	ProductIDs []string       `json:"product_ids,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
