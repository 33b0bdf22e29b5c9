package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"logishare/models"
)

func seedDriver(t *testing.T, s Storage, email string) *models.Driver {
	t.Helper()
	d, err := s.CreateDriver(context.Background(), models.NewDriver{
		Name:  "Test Driver",
		Email: email,
		Phone: "010-0000-0000",
	})
	if err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	return d
}

func seedOrder(t *testing.T, s Storage, number string, driverID *string) *models.Order {
	t.Helper()
	in := models.NewOrder{
		OrderNumber:      number,
		DriverID:         driverID,
		PickupLocation:   "Warehouse A",
		DeliveryLocation: "Office B",
		Fee:              "12500.00",
	}
	if driverID != nil {
		in.Status = strPtr(models.OrderStatusAccepted)
	}
	o, err := s.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateOrder(%s): %v", number, err)
	}
	return o
}

func seedEarning(t *testing.T, s Storage, driverID, orderID string, date time.Time) *models.Earning {
	t.Helper()
	e, err := s.CreateEarning(context.Background(), models.NewEarning{
		DriverID: driverID,
		OrderID:  orderID,
		Amount:   "12500.00",
		Date:     &date,
	})
	if err != nil {
		t.Fatalf("CreateEarning: %v", err)
	}
	return e
}

func TestCreateDriverDefaults(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "a@logishare.com")
	if d.ID == "" {
		t.Error("expected generated id")
	}
	if d.Rating != "0.00" || d.CompletionRate != "0.00" {
		t.Errorf("expected zero decimal defaults, got rating=%q completionRate=%q", d.Rating, d.CompletionRate)
	}
	if d.TotalDeliveries != 0 || d.IsOnline {
		t.Errorf("expected zero stats, got %+v", d)
	}
	if d.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
}

func TestCreateDriverDuplicateEmail(t *testing.T) {
	s := NewMemStorage()
	seedDriver(t, s, "dup@logishare.com")
	_, err := s.CreateDriver(context.Background(), models.NewDriver{
		Name: "Other", Email: "dup@logishare.com", Phone: "1",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetDriverByEmail(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "find@logishare.com")

	got, err := s.GetDriverByEmail(context.Background(), "find@logishare.com")
	if err != nil {
		t.Fatalf("GetDriverByEmail: %v", err)
	}
	if got == nil || got.ID != d.ID {
		t.Errorf("expected driver %s, got %+v", d.ID, got)
	}

	missing, err := s.GetDriverByEmail(context.Background(), "nobody@logishare.com")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for unknown email, got (%+v, %v)", missing, err)
	}
}

func TestUpdateDriverPartial(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "patch@logishare.com")

	updated, err := s.UpdateDriver(context.Background(), d.ID, models.DriverUpdate{
		Phone:    strPtr("010-9999-9999"),
		IsOnline: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("UpdateDriver: %v", err)
	}
	if updated.Phone != "010-9999-9999" || !updated.IsOnline {
		t.Errorf("updated fields not applied: %+v", updated)
	}
	if updated.Name != d.Name || updated.Email != d.Email {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateDriverNotFound(t *testing.T) {
	s := NewMemStorage()
	_, err := s.UpdateDriver(context.Background(), "missing", models.DriverUpdate{Phone: strPtr("1")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0001", nil)
	if o.Status != models.OrderStatusPending {
		t.Errorf("expected default status pending, got %q", o.Status)
	}
	if o.CompletedAt != nil {
		t.Error("new order must not have completedAt")
	}
	if o.DriverID != nil {
		t.Error("new order without driver must stay unassigned")
	}
}

func TestCreateOrderRejectsUnknownStatus(t *testing.T) {
	s := NewMemStorage()
	_, err := s.CreateOrder(context.Background(), models.NewOrder{
		OrderNumber: "LS-2026-0002", PickupLocation: "a", DeliveryLocation: "b",
		Fee: "1.00", Status: strPtr("shipped"),
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCreateOrderDuplicateNumber(t *testing.T) {
	s := NewMemStorage()
	seedOrder(t, s, "LS-2026-0003", nil)
	_, err := s.CreateOrder(context.Background(), models.NewOrder{
		OrderNumber: "LS-2026-0003", PickupLocation: "a", DeliveryLocation: "b", Fee: "1.00",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateOrderDeliveredStampsCompletedAt(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0010", nil)

	updated, err := s.UpdateOrder(context.Background(), o.ID, models.OrderUpdate{
		Status: strPtr(models.OrderStatusDelivered),
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("delivered order must have completedAt")
	}
	if updated.CompletedAt.Before(updated.CreatedAt) {
		t.Errorf("completedAt %v before createdAt %v", updated.CompletedAt, updated.CreatedAt)
	}
}

func TestUpdateOrderCompletedAtOnlyOnDelivered(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0011", nil)

	for _, status := range []string{
		models.OrderStatusAccepted,
		models.OrderStatusPickedUp,
		models.OrderStatusInTransit,
		models.OrderStatusCancelled,
	} {
		updated, err := s.UpdateOrder(context.Background(), o.ID, models.OrderUpdate{Status: &status})
		if err != nil {
			t.Fatalf("UpdateOrder(%s): %v", status, err)
		}
		if updated.CompletedAt != nil {
			t.Errorf("status %q must not set completedAt", status)
		}
	}

	// Once delivered the stamp stays, even through later status changes.
	delivered, err := s.UpdateOrder(context.Background(), o.ID, models.OrderUpdate{
		Status: strPtr(models.OrderStatusDelivered),
	})
	if err != nil {
		t.Fatalf("UpdateOrder(delivered): %v", err)
	}
	stamp := delivered.CompletedAt
	if stamp == nil {
		t.Fatal("delivered order must have completedAt")
	}
	after, err := s.UpdateOrder(context.Background(), o.ID, models.OrderUpdate{
		Status: strPtr(models.OrderStatusCancelled),
	})
	if err != nil {
		t.Fatalf("UpdateOrder(cancelled): %v", err)
	}
	if after.CompletedAt == nil || !after.CompletedAt.Equal(*stamp) {
		t.Errorf("completedAt must carry over, got %v want %v", after.CompletedAt, stamp)
	}
}

func TestUpdateOrderNotFoundDoesNotMutate(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0012", nil)

	_, err := s.UpdateOrder(context.Background(), "missing", models.OrderUpdate{
		Status: strPtr(models.OrderStatusDelivered),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := s.GetOrder(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Status != models.OrderStatusPending || got.CompletedAt != nil {
		t.Errorf("store mutated by failed update: %+v", got)
	}
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0013", nil)
	_, err := s.UpdateOrder(context.Background(), o.ID, models.OrderUpdate{Status: strPtr("lost")})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAcceptOrder(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "accept@logishare.com")
	o := seedOrder(t, s, "LS-2026-0020", nil)

	accepted, err := s.AcceptOrder(context.Background(), o.ID, d.ID)
	if err != nil {
		t.Fatalf("AcceptOrder: %v", err)
	}
	if accepted.DriverID == nil || *accepted.DriverID != d.ID {
		t.Errorf("driverId not set: %+v", accepted)
	}
	if accepted.Status != models.OrderStatusAccepted {
		t.Errorf("status = %q, want accepted", accepted.Status)
	}

	// Both fields land together on a fresh read.
	got, err := s.GetOrder(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.DriverID == nil || *got.DriverID != d.ID || got.Status != models.OrderStatusAccepted {
		t.Errorf("accept not atomic on read-back: %+v", got)
	}
}

func TestAcceptOrderAlreadyTaken(t *testing.T) {
	s := NewMemStorage()
	a := seedDriver(t, s, "first@logishare.com")
	b := seedDriver(t, s, "second@logishare.com")
	o := seedOrder(t, s, "LS-2026-0021", nil)

	if _, err := s.AcceptOrder(context.Background(), o.ID, a.ID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err := s.AcceptOrder(context.Background(), o.ID, b.ID)
	if !errors.Is(err, ErrOrderTaken) {
		t.Fatalf("expected ErrOrderTaken, got %v", err)
	}

	got, _ := s.GetOrder(context.Background(), o.ID)
	if got.DriverID == nil || *got.DriverID != a.ID {
		t.Errorf("losing accept overwrote the winner: %+v", got)
	}
}

func TestAcceptOrderNotFound(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "ghost@logishare.com")
	_, err := s.AcceptOrder(context.Background(), "missing", d.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAcceptOrderConcurrentRace(t *testing.T) {
	s := NewMemStorage()
	o := seedOrder(t, s, "LS-2026-0022", nil)

	const drivers = 16
	var wg sync.WaitGroup
	wins := make(chan string, drivers)
	for i := 0; i < drivers; i++ {
		d := seedDriver(t, s, string(rune('a'+i))+"@race.logishare.com")
		wg.Add(1)
		go func(driverID string) {
			defer wg.Done()
			if _, err := s.AcceptOrder(context.Background(), o.ID, driverID); err == nil {
				wins <- driverID
			}
		}(d.ID)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for id := range wins {
		winners = append(winners, id)
	}
	if len(winners) != 1 {
		t.Fatalf("expected exactly one winning accept, got %d", len(winners))
	}
	got, _ := s.GetOrder(context.Background(), o.ID)
	if got.DriverID == nil || *got.DriverID != winners[0] {
		t.Errorf("stored driver %v does not match winner %s", got.DriverID, winners[0])
	}
}

func TestPendingOrdersExcludeAssigned(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "pending@logishare.com")
	seedOrder(t, s, "LS-2026-0030", &d.ID)
	free := seedOrder(t, s, "LS-2026-0031", nil)

	pending, err := s.GetPendingOrders(context.Background())
	if err != nil {
		t.Fatalf("GetPendingOrders: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending order, got %d", len(pending))
	}
	if pending[0].ID != free.ID {
		t.Errorf("wrong pending order: %+v", pending[0])
	}
	if pending[0].DriverID != nil {
		t.Error("pending order must be unassigned")
	}
}

func TestGetOrdersByDriverIDAttachesEarnings(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "orders@logishare.com")
	withEarning := seedOrder(t, s, "LS-2026-0040", &d.ID)
	without := seedOrder(t, s, "LS-2026-0041", &d.ID)
	seedEarning(t, s, d.ID, withEarning.ID, time.Now())

	// Another driver's order must not leak in.
	other := seedDriver(t, s, "other@logishare.com")
	seedOrder(t, s, "LS-2026-0042", &other.ID)

	orders, err := s.GetOrdersByDriverID(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("GetOrdersByDriverID: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	for _, o := range orders {
		switch o.ID {
		case withEarning.ID:
			if o.Earnings == nil || o.Earnings.OrderID != withEarning.ID {
				t.Errorf("expected earning on order %s", o.OrderNumber)
			}
		case without.ID:
			if o.Earnings != nil {
				t.Errorf("unexpected earning on order %s", o.OrderNumber)
			}
		default:
			t.Errorf("unexpected order %s", o.OrderNumber)
		}
	}
}

func TestDailyEarnings(t *testing.T) {
	s := NewMemStorage()
	a := seedDriver(t, s, "daily-a@logishare.com")
	b := seedDriver(t, s, "daily-b@logishare.com")
	oa := seedOrder(t, s, "LS-2026-0050", &a.ID)
	ob := seedOrder(t, s, "LS-2026-0051", &b.ID)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	match := seedEarning(t, s, a.ID, oa.ID, day.Add(14*time.Hour))
	seedEarning(t, s, a.ID, oa.ID, day.AddDate(0, 0, 1).Add(2*time.Hour)) // next day
	seedEarning(t, s, b.ID, ob.ID, day.Add(10*time.Hour))                 // other driver

	got, err := s.GetDailyEarnings(context.Background(), a.ID, day)
	if err != nil {
		t.Fatalf("GetDailyEarnings: %v", err)
	}
	if len(got) != 1 || got[0].ID != match.ID {
		t.Errorf("expected only driver A's same-day earning, got %+v", got)
	}
}

func TestDailyEarningsHalfOpenWindow(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "window@logishare.com")
	o := seedOrder(t, s, "LS-2026-0052", &d.ID)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	atMidnight := seedEarning(t, s, d.ID, o.ID, day)
	seedEarning(t, s, d.ID, o.ID, day.AddDate(0, 0, 1)) // exactly next midnight: excluded

	got, err := s.GetDailyEarnings(context.Background(), d.ID, day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("GetDailyEarnings: %v", err)
	}
	if len(got) != 1 || got[0].ID != atMidnight.ID {
		t.Errorf("window must be [midnight, midnight+24h), got %+v", got)
	}
}

func TestWeeklyEarnings(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "weekly@logishare.com")
	o := seedOrder(t, s, "LS-2026-0053", &d.ID)

	recent := seedEarning(t, s, d.ID, o.ID, time.Now().AddDate(0, 0, -2))
	seedEarning(t, s, d.ID, o.ID, time.Now().AddDate(0, 0, -8)) // outside window

	got, err := s.GetWeeklyEarnings(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("GetWeeklyEarnings: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Errorf("expected only the 2-day-old earning, got %+v", got)
	}
}

func TestCreateEarningDefaultsDateToNow(t *testing.T) {
	s := NewMemStorage()
	d := seedDriver(t, s, "earn@logishare.com")
	o := seedOrder(t, s, "LS-2026-0054", &d.ID)

	before := time.Now()
	e, err := s.CreateEarning(context.Background(), models.NewEarning{
		DriverID: d.ID, OrderID: o.ID, Amount: "9500.00",
	})
	if err != nil {
		t.Fatalf("CreateEarning: %v", err)
	}
	if e.Date.Before(before) || e.Date.After(time.Now()) {
		t.Errorf("date %v not defaulted to creation time", e.Date)
	}
}

func TestGetDriverProfile(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()
	d := seedDriver(t, s, "profile@logishare.com")

	t.Run("without vehicle and license", func(t *testing.T) {
		p, err := s.GetDriverProfile(ctx, d.ID)
		if err != nil {
			t.Fatalf("GetDriverProfile: %v", err)
		}
		if p == nil {
			t.Fatal("expected profile for existing driver")
		}
		if p.Vehicle != nil || p.License != nil {
			t.Errorf("expected absent vehicle/license, got %+v", p)
		}
	})

	t.Run("with vehicle and license", func(t *testing.T) {
		v, err := s.CreateVehicle(ctx, models.NewVehicle{
			DriverID: d.ID, LicensePlate: "SEL-99-0001", Model: "Porter", Capacity: "1t", InsuranceExpiry: "2027.01.01",
		})
		if err != nil {
			t.Fatalf("CreateVehicle: %v", err)
		}
		l, err := s.CreateLicense(ctx, models.NewLicense{
			DriverID: d.ID, LicenseType: "Class 1", LicenseNumber: "00-11", IssueDate: "2019.01.01", RenewalDate: "2028.01.01",
		})
		if err != nil {
			t.Fatalf("CreateLicense: %v", err)
		}

		p, err := s.GetDriverProfile(ctx, d.ID)
		if err != nil {
			t.Fatalf("GetDriverProfile: %v", err)
		}
		if p.Vehicle == nil || p.Vehicle.ID != v.ID {
			t.Errorf("vehicle not attached: %+v", p.Vehicle)
		}
		if p.License == nil || p.License.ID != l.ID {
			t.Errorf("license not attached: %+v", p.License)
		}
	})

	t.Run("missing driver", func(t *testing.T) {
		p, err := s.GetDriverProfile(ctx, "missing")
		if err != nil || p != nil {
			t.Errorf("expected (nil, nil), got (%+v, %v)", p, err)
		}
	})
}

func TestSeedDemo(t *testing.T) {
	s := NewMemStorage()
	if err := SeedDemo(context.Background(), s); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}
	d, err := s.GetDriverByEmail(context.Background(), "driver@logishare.com")
	if err != nil || d == nil {
		t.Fatalf("demo driver missing: (%+v, %v)", d, err)
	}
	p, err := s.GetDriverProfile(context.Background(), d.ID)
	if err != nil || p == nil || p.Vehicle == nil || p.License == nil {
		t.Fatalf("demo profile incomplete: (%+v, %v)", p, err)
	}
	pending, err := s.GetPendingOrders(context.Background())
	if err != nil {
		t.Fatalf("GetPendingOrders: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending demo orders, got %d", len(pending))
	}
}
