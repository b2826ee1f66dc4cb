// Package entity defines the request-scoped graph entity shapes and the
// adapters that build them from backend JSON payloads. Entities are
// constructed fresh per request and never persisted or mutated by the
// gateway; authoritative values such as order totals pass through exactly
// as the owning service reported them.
package entity

// OrderStatus is the order service's fulfillment state axis. The gateway
// surfaces whatever the service reports and never transitions it, so the
// set below is informational, not a validation whitelist.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// PaymentStatus is the independent payment state axis.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Product is one catalog item. Fully determined by a single catalog lookup.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// OrderItem is a line of an order. Price and Name are snapshots captured at
// order time; a later catalog change must not alter them.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

// Order is one order service record. ShippingAddress is access-restricted:
// it never reaches the graph directly, only through the derived one-line
// address projection.
type Order struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Items           []*OrderItem   `json:"items"`
	TotalAmount     float64        `json:"totalAmount"`
	Status          OrderStatus    `json:"status"`
	PaymentStatus   PaymentStatus  `json:"paymentStatus"`
	ShippingAddress map[string]any `json:"-"`
	PaymentMethod   string         `json:"paymentMethod"`
	TrackingNumber  *string        `json:"trackingNumber"`
	Notes           *string        `json:"notes"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// User is an identity record projection.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}
