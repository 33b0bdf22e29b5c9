package storage

import (
	"context"
	"errors"
	"time"

	"logishare/models"
)

var (
	// ErrNotFound is returned by update and accept operations that reference
	// an id absent from the store.
	ErrNotFound = errors.New("not found")
	// ErrOrderTaken is returned when accepting an order that already has a
	// driver assigned.
	ErrOrderTaken = errors.New("order already taken")
	// ErrInvalidStatus is returned when a create or update carries a status
	// outside the closed order-status set.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrDuplicate is returned when a unique field (driver email, order
	// number) collides with an existing record.
	ErrDuplicate = errors.New("duplicate value")
)

// Storage is the single owner of all driver-dashboard entities. Fetches
// return (nil, nil) when the record is absent. Composed reads (profile,
// orders with earnings) are multiple independent fetches and are not
// snapshot-consistent.
type Storage interface {
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	GetDriverByEmail(ctx context.Context, email string) (*models.Driver, error)
	CreateDriver(ctx context.Context, in models.NewDriver) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id string, upd models.DriverUpdate) (*models.Driver, error)
	GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)

	GetVehicleByDriverID(ctx context.Context, driverID string) (*models.Vehicle, error)
	CreateVehicle(ctx context.Context, in models.NewVehicle) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, upd models.VehicleUpdate) (*models.Vehicle, error)

	GetLicenseByDriverID(ctx context.Context, driverID string) (*models.License, error)
	CreateLicense(ctx context.Context, in models.NewLicense) (*models.License, error)
	UpdateLicense(ctx context.Context, id string, upd models.LicenseUpdate) (*models.License, error)

	GetOrder(ctx context.Context, id string) (*models.Order, error)
	GetOrdersByDriverID(ctx context.Context, driverID string) ([]models.OrderWithEarnings, error)
	GetPendingOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, in models.NewOrder) (*models.Order, error)
	UpdateOrder(ctx context.Context, id string, upd models.OrderUpdate) (*models.Order, error)
	AcceptOrder(ctx context.Context, orderID, driverID string) (*models.Order, error)

	GetEarningsByDriverID(ctx context.Context, driverID string) ([]models.Earning, error)
	CreateEarning(ctx context.Context, in models.NewEarning) (*models.Earning, error)
	GetDailyEarnings(ctx context.Context, driverID string, day time.Time) ([]models.Earning, error)
	GetWeeklyEarnings(ctx context.Context, driverID string) ([]models.Earning, error)
}

// DayStart truncates t to midnight in its own location. Daily earnings are
// matched against the half-open window [DayStart(d), DayStart(d)+24h) in both
// store implementations.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
