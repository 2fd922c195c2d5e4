package models

import "time"

// OrderItem represents a single product entry within an order.
type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	ProductID   int64   `json:"product"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is an immutable historical record. The backend derives its contents
// from the current cart at creation time; the client never mutates it.
type Order struct {
	ID          int64       `json:"id"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items"`
}
