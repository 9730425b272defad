package domain

import "time"

// Order carries its product associations eagerly so a single fetch is enough
// to render the full order. Products is never nil on a loaded order.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
	Products   []Product `json:"products"`
}
