package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"logishare/models"
)

// MemStorage keeps every entity in process memory. It backs local development
// and tests; construct a fresh one per test for isolation. All methods are
// safe for concurrent use.
type MemStorage struct {
	mu       sync.RWMutex
	drivers  map[string]models.Driver
	vehicles map[string]models.Vehicle
	licenses map[string]models.License
	orders   map[string]models.Order
	earnings map[string]models.Earning
}

var _ Storage = (*MemStorage)(nil)

func NewMemStorage() *MemStorage {
	return &MemStorage{
		drivers:  make(map[string]models.Driver),
		vehicles: make(map[string]models.Vehicle),
		licenses: make(map[string]models.License),
		orders:   make(map[string]models.Order),
		earnings: make(map[string]models.Earning),
	}
}

func (s *MemStorage) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.drivers[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *MemStorage) GetDriverByEmail(ctx context.Context, email string) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drivers {
		if d.Email == email {
			return &d, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateDriver(ctx context.Context, in models.NewDriver) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.drivers {
		if existing.Email == in.Email {
			return nil, fmt.Errorf("driver email %q: %w", in.Email, ErrDuplicate)
		}
	}
	d := models.Driver{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Rating:         "0.00",
		CompletionRate: "0.00",
		CreatedAt:      time.Now(),
	}
	if in.Rating != nil {
		d.Rating = *in.Rating
	}
	if in.TotalDeliveries != nil {
		d.TotalDeliveries = *in.TotalDeliveries
	}
	if in.CompletionRate != nil {
		d.CompletionRate = *in.CompletionRate
	}
	if in.IsOnline != nil {
		d.IsOnline = *in.IsOnline
	}
	s.drivers[d.ID] = d
	return &d, nil
}

func (s *MemStorage) UpdateDriver(ctx context.Context, id string, upd models.DriverUpdate) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, fmt.Errorf("driver %s: %w", id, ErrNotFound)
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Email != nil {
		d.Email = *upd.Email
	}
	if upd.Phone != nil {
		d.Phone = *upd.Phone
	}
	if upd.Rating != nil {
		d.Rating = *upd.Rating
	}
	if upd.TotalDeliveries != nil {
		d.TotalDeliveries = *upd.TotalDeliveries
	}
	if upd.CompletionRate != nil {
		d.CompletionRate = *upd.CompletionRate
	}
	if upd.IsOnline != nil {
		d.IsOnline = *upd.IsOnline
	}
	s.drivers[id] = d
	return &d, nil
}

// GetDriverProfile composes driver + vehicle + license. Vehicle and license
// stay nil when the driver has none; a missing driver yields (nil, nil).
func (s *MemStorage) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	driver, err := s.GetDriver(ctx, driverID)
	if err != nil || driver == nil {
		return nil, err
	}
	vehicle, err := s.GetVehicleByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	license, err := s.GetLicenseByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return &models.DriverProfile{Driver: *driver, Vehicle: vehicle, License: license}, nil
}

func (s *MemStorage) GetVehicleByDriverID(ctx context.Context, driverID string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.DriverID == driverID {
			return &v, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateVehicle(ctx context.Context, in models.NewVehicle) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := models.Vehicle{
		ID:              uuid.NewString(),
		DriverID:        in.DriverID,
		LicensePlate:    in.LicensePlate,
		Model:           in.Model,
		Capacity:        in.Capacity,
		InsuranceExpiry: in.InsuranceExpiry,
	}
	s.vehicles[v.ID] = v
	return &v, nil
}

func (s *MemStorage) UpdateVehicle(ctx context.Context, id string, upd models.VehicleUpdate) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	if upd.DriverID != nil {
		v.DriverID = *upd.DriverID
	}
	if upd.LicensePlate != nil {
		v.LicensePlate = *upd.LicensePlate
	}
	if upd.Model != nil {
		v.Model = *upd.Model
	}
	if upd.Capacity != nil {
		v.Capacity = *upd.Capacity
	}
	if upd.InsuranceExpiry != nil {
		v.InsuranceExpiry = *upd.InsuranceExpiry
	}
	s.vehicles[id] = v
	return &v, nil
}

func (s *MemStorage) GetLicenseByDriverID(ctx context.Context, driverID string) (*models.License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.licenses {
		if l.DriverID == driverID {
			return &l, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateLicense(ctx context.Context, in models.NewLicense) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := models.License{
		ID:            uuid.NewString(),
		DriverID:      in.DriverID,
		LicenseType:   in.LicenseType,
		LicenseNumber: in.LicenseNumber,
		IssueDate:     in.IssueDate,
		RenewalDate:   in.RenewalDate,
	}
	s.licenses[l.ID] = l
	return &l, nil
}

func (s *MemStorage) UpdateLicense(ctx context.Context, id string, upd models.LicenseUpdate) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.licenses[id]
	if !ok {
		return nil, fmt.Errorf("license %s: %w", id, ErrNotFound)
	}
	if upd.DriverID != nil {
		l.DriverID = *upd.DriverID
	}
	if upd.LicenseType != nil {
		l.LicenseType = *upd.LicenseType
	}
	if upd.LicenseNumber != nil {
		l.LicenseNumber = *upd.LicenseNumber
	}
	if upd.IssueDate != nil {
		l.IssueDate = *upd.IssueDate
	}
	if upd.RenewalDate != nil {
		l.RenewalDate = *upd.RenewalDate
	}
	s.licenses[id] = l
	return &l, nil
}

func (s *MemStorage) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

// GetOrdersByDriverID returns the driver's orders, each with the first
// earning matching its id attached (nil when none). Order is unspecified.
func (s *MemStorage) GetOrdersByDriverID(ctx context.Context, driverID string) ([]models.OrderWithEarnings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.OrderWithEarnings
	for _, o := range s.orders {
		if o.DriverID == nil || *o.DriverID != driverID {
			continue
		}
		owe := models.OrderWithEarnings{Order: o}
		for _, e := range s.earnings {
			if e.OrderID == o.ID {
				earning := e
				owe.Earnings = &earning
				break
			}
		}
		out = append(out, owe)
	}
	return out, nil
}

func (s *MemStorage) GetPendingOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.Status == models.OrderStatusPending {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MemStorage) CreateOrder(ctx context.Context, in models.NewOrder) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := models.OrderStatusPending
	if in.Status != nil {
		status = *in.Status
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}
	for _, existing := range s.orders {
		if existing.OrderNumber == in.OrderNumber {
			return nil, fmt.Errorf("order number %q: %w", in.OrderNumber, ErrDuplicate)
		}
	}
	o := models.Order{
		ID:               uuid.NewString(),
		OrderNumber:      in.OrderNumber,
		DriverID:         in.DriverID,
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
		Status:           status,
		EstimatedTime:    in.EstimatedTime,
		Distance:         in.Distance,
		Fee:              in.Fee,
		PhotoURL:         in.PhotoURL,
		CreatedAt:        time.Now(),
	}
	s.orders[o.ID] = o
	return &o, nil
}

// UpdateOrder merges the supplied fields onto the order. Setting status to
// "delivered" stamps CompletedAt with the current time regardless of what the
// caller sent; other statuses never clear it.
func (s *MemStorage) UpdateOrder(ctx context.Context, id string, upd models.OrderUpdate) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateOrderLocked(id, upd)
}

func (s *MemStorage) updateOrderLocked(id string, upd models.OrderUpdate) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if upd.Status != nil && !models.ValidOrderStatus(*upd.Status) {
		return nil, fmt.Errorf("status %q: %w", *upd.Status, ErrInvalidStatus)
	}
	if upd.OrderNumber != nil {
		o.OrderNumber = *upd.OrderNumber
	}
	if upd.DriverID != nil {
		o.DriverID = upd.DriverID
	}
	if upd.PickupLocation != nil {
		o.PickupLocation = *upd.PickupLocation
	}
	if upd.DeliveryLocation != nil {
		o.DeliveryLocation = *upd.DeliveryLocation
	}
	if upd.EstimatedTime != nil {
		o.EstimatedTime = upd.EstimatedTime
	}
	if upd.Distance != nil {
		o.Distance = upd.Distance
	}
	if upd.Fee != nil {
		o.Fee = *upd.Fee
	}
	if upd.PhotoURL != nil {
		o.PhotoURL = upd.PhotoURL
	}
	if upd.Status != nil {
		o.Status = *upd.Status
		if *upd.Status == models.OrderStatusDelivered {
			now := time.Now()
			o.CompletedAt = &now
		}
	}
	s.orders[id] = o
	return &o, nil
}

// AcceptOrder assigns the driver and moves the order to "accepted" in one
// step. It only succeeds while the order is unassigned, so two drivers racing
// for the same order cannot both win.
func (s *MemStorage) AcceptOrder(ctx context.Context, orderID, driverID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.DriverID != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderTaken)
	}
	status := models.OrderStatusAccepted
	return s.updateOrderLocked(orderID, models.OrderUpdate{DriverID: &driverID, Status: &status})
}

func (s *MemStorage) GetEarningsByDriverID(ctx context.Context, driverID string) ([]models.Earning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Earning
	for _, e := range s.earnings {
		if e.DriverID == driverID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemStorage) CreateEarning(ctx context.Context, in models.NewEarning) (*models.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := models.Earning{
		ID:       uuid.NewString(),
		DriverID: in.DriverID,
		OrderID:  in.OrderID,
		Amount:   in.Amount,
		Date:     time.Now(),
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	s.earnings[e.ID] = e
	return &e, nil
}

// GetDailyEarnings returns the driver's earnings dated within the calendar
// day of the given time, matched against [midnight, midnight+24h).
func (s *MemStorage) GetDailyEarnings(ctx context.Context, driverID string, day time.Time) ([]models.Earning, error) {
	start := DayStart(day)
	end := start.AddDate(0, 0, 1)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Earning
	for _, e := range s.earnings {
		if e.DriverID == driverID && !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetWeeklyEarnings returns the driver's earnings from the rolling 7-day
// window ending now (not a calendar week).
func (s *MemStorage) GetWeeklyEarnings(ctx context.Context, driverID string) ([]models.Earning, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Earning
	for _, e := range s.earnings {
		if e.DriverID == driverID && !e.Date.Before(weekAgo) {
			out = append(out, e)
		}
	}
	return out, nil
}
