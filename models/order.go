package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the closed set of order
// statuses. The store rejects anything else instead of persisting free text.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPickedUp,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a single delivery job. DriverID is nil while the order is
// unassigned (which implies status "pending"). CompletedAt is stamped by the
// store when status becomes "delivered" and is never supplied by callers.
// Fee and distance are decimal strings.
type Order struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"orderNumber"`
	DriverID         *string    `json:"driverId"`
	PickupLocation   string     `json:"pickupLocation"`
	DeliveryLocation string     `json:"deliveryLocation"`
	Status           string     `json:"status"`
	EstimatedTime    *int       `json:"estimatedTime"`
	Distance         *string    `json:"distance"`
	Fee              string     `json:"fee"`
	PhotoURL         *string    `json:"photoUrl"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}

// NewOrder is the input for creating an order. Status defaults to "pending".
type NewOrder struct {
	OrderNumber      string  `json:"orderNumber"`
	DriverID         *string `json:"driverId"`
	PickupLocation   string  `json:"pickupLocation"`
	DeliveryLocation string  `json:"deliveryLocation"`
	Status           *string `json:"status"`
	EstimatedTime    *int    `json:"estimatedTime"`
	Distance         *string `json:"distance"`
	Fee              string  `json:"fee"`
	PhotoURL         *string `json:"photoUrl"`
}

// OrderUpdate is a partial update; nil fields are left unchanged. There is no
// CompletedAt field; the store derives it from the status transition.
type OrderUpdate struct {
	OrderNumber      *string `json:"orderNumber"`
	DriverID         *string `json:"driverId"`
	PickupLocation   *string `json:"pickupLocation"`
	DeliveryLocation *string `json:"deliveryLocation"`
	Status           *string `json:"status"`
	EstimatedTime    *int    `json:"estimatedTime"`
	Distance         *string `json:"distance"`
	Fee              *string `json:"fee"`
	PhotoURL         *string `json:"photoUrl"`
}

// OrderWithEarnings is the dashboard view of an order with its earning record
// attached when one exists. Never stored.
type OrderWithEarnings struct {
	Order
	Earnings *Earning `json:"earnings,omitempty"`
}
