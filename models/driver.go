package models

import "time"

// Driver is a row from the drivers table. Rating and completion rate are
// display values maintained elsewhere; they are carried as decimal strings so
// the UI never sees float rounding.
type Driver struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Rating          string    `json:"rating"`
	TotalDeliveries int       `json:"totalDeliveries"`
	CompletionRate  string    `json:"completionRate"`
	IsOnline        bool      `json:"isOnline"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewDriver is the input for registering a driver. Stats fields are optional
// and default to zero values ("0.00" for the decimal strings).
type NewDriver struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Rating          *string `json:"rating"`
	TotalDeliveries *int    `json:"totalDeliveries"`
	CompletionRate  *string `json:"completionRate"`
	IsOnline        *bool   `json:"isOnline"`
}

// DriverUpdate is a partial update; nil fields are left unchanged.
type DriverUpdate struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Rating          *string `json:"rating"`
	TotalDeliveries *int    `json:"totalDeliveries"`
	CompletionRate  *string `json:"completionRate"`
	IsOnline        *bool   `json:"isOnline"`
}

// DriverProfile is the composed profile view: a driver with its vehicle and
// license attached when present. Never stored.
type DriverProfile struct {
	Driver
	Vehicle *Vehicle `json:"vehicle,omitempty"`
	License *License `json:"license,omitempty"`
}
