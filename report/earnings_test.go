package report

import (
	"testing"
	"time"

	"logishare/models"
)

func TestEarningsWorkbook(t *testing.T) {
	driver := &models.Driver{ID: "d1", Name: "Alex Kim"}
	date := time.Date(2026, 8, 20, 14, 30, 0, 0, time.Local)
	earnings := []models.Earning{
		{ID: "e1", DriverID: "d1", OrderID: "o1", Amount: "12500.00", Date: date},
		{ID: "e2", DriverID: "d1", OrderID: "o2", Amount: "not-a-number", Date: date},
		{ID: "e3", DriverID: "d1", OrderID: "o3", Amount: "7500.50", Date: date.AddDate(0, 0, 1)},
	}

	f, err := EarningsWorkbook(driver, earnings)
	if err != nil {
		t.Fatalf("EarningsWorkbook: %v", err)
	}
	defer f.Close()

	get := func(cell string) string {
		t.Helper()
		v, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	if got := get("A1"); got != "Date" {
		t.Errorf("A1 = %q, want Date", got)
	}
	if got := get("F1"); got != "Alex Kim" {
		t.Errorf("F1 = %q, want driver name", got)
	}
	if got := get("A2"); got != "2026-08-20" {
		t.Errorf("A2 = %q", got)
	}
	if got := get("C2"); got != "12500.00" {
		t.Errorf("C2 = %q", got)
	}
	if got := get("A4"); got != "2026-08-21" {
		t.Errorf("A4 = %q", got)
	}

	// Unparseable amounts are listed but stay out of the total.
	if got := get("B5"); got != "Total" {
		t.Errorf("B5 = %q", got)
	}
	if got := get("C5"); got != "20000.5" {
		t.Errorf("C5 = %q, want 20000.5", got)
	}
}

func TestEarningsWorkbookEmpty(t *testing.T) {
	f, err := EarningsWorkbook(nil, nil)
	if err != nil {
		t.Fatalf("EarningsWorkbook: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "C2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "0" {
		t.Errorf("empty total = %q, want 0", v)
	}
}
