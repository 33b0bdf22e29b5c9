package models

import "time"

// Earning is a monetary record tied to one completed order and one driver.
// Amount is a decimal string. One record per delivered order is expected but
// not enforced.
type Earning struct {
	ID       string    `json:"id"`
	DriverID string    `json:"driverId"`
	OrderID  string    `json:"orderId"`
	Amount   string    `json:"amount"`
	Date     time.Time `json:"date"`
}

// NewEarning is the input for recording an earning. Date defaults to the
// creation time when nil.
type NewEarning struct {
	DriverID string     `json:"driverId"`
	OrderID  string     `json:"orderId"`
	Amount   string     `json:"amount"`
	Date     *time.Time `json:"date"`
}
