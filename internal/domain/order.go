package domain

import "time"

// OrderStatus is the lifecycle state of an order. Checkout always creates
// orders as Pending; later transitions come from the admin back-office.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a persisted purchase. OrderNumber is the human-facing identifier
// shown on receipts, distinct from the internal ID.
// Invariant at creation: Total = SubTotal - Discount + Shipping + Tax, and
// the sum of item line totals equals SubTotal.
type Order struct {
	ID              int64
	CustomerID      int64
	OrderNumber     string
	OrderDate       time.Time
	SubTotal        int64
	Discount        int64
	Shipping        int64
	Tax             int64
	Total           int64
	Status          OrderStatus
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
	ShippingMethod  string
	Notes           string
	Items           []OrderItem
}

// OrderItem is one order line with quantity and prices snapshotted from the
// cart at checkout time. The product/variant fields are display data joined
// in when the order is read back.
type OrderItem struct {
	ID        int64
	OrderID   int64
	VariantID int64
	Quantity  int32
	UnitPrice int64
	LineTotal int64

	ProductID    int64
	ProductTitle string
	ProductSlug  string
	ProductPrice int64
	Size         string
	Color        string
	ImageURL     string
}

// CheckoutRequest is the inbound payload that converts a cart into an order.
// ShippingAddress is the street part; Ward/District/City complete it.
type CheckoutRequest struct {
	CartID          string  `json:"cartId" validate:"required"`
	FullName        string  `json:"fullName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required"`
	ShippingAddress string  `json:"shippingAddress" validate:"required"`
	City            string  `json:"city" validate:"required"`
	District        string  `json:"district" validate:"required"`
	Ward            string  `json:"ward" validate:"required"`
	BillingAddress  *string `json:"billingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
	ShippingMethod  string  `json:"shippingMethod"`
	Notes           *string `json:"notes"`
}

// OrderStats aggregates back-office dashboard numbers.
type OrderStats struct {
	TotalOrders int64
	Revenue     int64
	ByStatus    map[OrderStatus]int64
}
