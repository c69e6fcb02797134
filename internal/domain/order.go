package domain

import "time"

// Order statuses an admin may transition an order through.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// ValidOrderStatus reports whether the value is a known order status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	User       *User       `json:"user,omitempty"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"totalCents"`
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
}
