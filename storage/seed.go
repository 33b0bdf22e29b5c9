package storage

import (
	"context"
	"fmt"

	"logishare/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

// SeedDemo loads the sample driver, vehicle, license and a few orders used
// when running on the in-memory store, so the dashboard has data to show.
func SeedDemo(ctx context.Context, s Storage) error {
	driver, err := s.CreateDriver(ctx, models.NewDriver{
		Name:            "Alex Kim",
		Email:           "driver@logishare.com",
		Phone:           "010-1234-5678",
		Rating:          strPtr("4.90"),
		TotalDeliveries: intPtr(328),
		CompletionRate:  strPtr("97.80"),
		IsOnline:        boolPtr(true),
	})
	if err != nil {
		return fmt.Errorf("seed driver: %w", err)
	}

	if _, err := s.CreateVehicle(ctx, models.NewVehicle{
		DriverID:        driver.ID,
		LicensePlate:    "SEL-12-3456",
		Model:           "Hyundai Porter II",
		Capacity:        "1t",
		InsuranceExpiry: "2026.08.15",
	}); err != nil {
		return fmt.Errorf("seed vehicle: %w", err)
	}

	if _, err := s.CreateLicense(ctx, models.NewLicense{
		DriverID:      driver.ID,
		LicenseType:   "Class 1 Standard",
		LicenseNumber: "11-23-456789-00",
		IssueDate:     "2018.03.15",
		RenewalDate:   "2027.03.15",
	}); err != nil {
		return fmt.Errorf("seed license: %w", err)
	}

	seedOrders := []models.NewOrder{
		{
			OrderNumber:      "LS-2026-0158",
			DriverID:         &driver.ID,
			PickupLocation:   "Homeplus Gangnam",
			DeliveryLocation: "Yeoksam-dong, Gangnam-gu, Seoul",
			Status:           strPtr(models.OrderStatusInTransit),
			EstimatedTime:    intPtr(25),
			Distance:         strPtr("8.50"),
			Fee:              "12500.00",
		},
		{
			OrderNumber:      "LS-2026-0159",
			PickupLocation:   "E-Mart Traders World Cup",
			DeliveryLocation: "Sangam-dong, Mapo-gu, Seoul",
			EstimatedTime:    intPtr(25),
			Distance:         strPtr("8.50"),
			Fee:              "15000.00",
		},
		{
			OrderNumber:      "LS-2026-0160",
			PickupLocation:   "Lotte Mart Seoul Station",
			DeliveryLocation: "Hangang-ro, Yongsan-gu, Seoul",
			EstimatedTime:    intPtr(18),
			Distance:         strPtr("5.20"),
			Fee:              "9500.00",
		},
	}
	for _, in := range seedOrders {
		if _, err := s.CreateOrder(ctx, in); err != nil {
			return fmt.Errorf("seed order %s: %w", in.OrderNumber, err)
		}
	}
	return nil
}
