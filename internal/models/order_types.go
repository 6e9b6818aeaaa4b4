package models

import "time"

// Order statuses. Checkout records orders as completed immediately; pending
// and cancelled exist for admin overrides.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderItem is an immutable snapshot of a cart line taken at checkout.
// The live product it references may later be edited or deleted without
// affecting these rows.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
