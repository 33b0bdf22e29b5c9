// Package report builds downloadable spreadsheets for the earnings screen.
package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"logishare/models"
)

const sheetName = "Earnings"

// EarningsWorkbook renders the driver's earnings into an xlsx workbook: one
// row per record plus a total. Amounts are decimal strings; unparseable ones
// are skipped in the total but still listed.
func EarningsWorkbook(driver *models.Driver, earnings []models.Earning) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Date", "Order ID", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	if driver != nil {
		f.SetCellValue(sheetName, "E1", "Driver")
		f.SetCellValue(sheetName, "F1", driver.Name)
	}

	var total float64
	rowIndex := 2
	for _, e := range earnings {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), e.OrderID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), e.Amount)
		if amount, err := strconv.ParseFloat(e.Amount, 64); err == nil {
			total += amount
		}
		rowIndex++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), total)
	return f, nil
}
