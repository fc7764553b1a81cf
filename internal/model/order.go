package model

import "time"

// OrderStatus tracks an order through fulfilment.
type OrderStatus string

// Order statuses.
const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipping  OrderStatus = "shipping"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a customer order with its line items.
type Order struct {
	OrderDate time.Time
	Status    OrderStatus
	Items     []OrderItem
	ID        int64
	UserID    int64
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int64
	ProductID int64
	Quantity  int
	Price     float64
}

// Review is a product rating left by a user.
type Review struct {
	Comment   string
	ID        int64
	ProductID int64
	UserID    int64
	Rating    int
}
