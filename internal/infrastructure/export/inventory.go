// Package export renders reports as spreadsheet files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"stockbook/internal/domain/registers/stock"
)

// ContentTypeXLSX is the MIME type of the produced workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const inventorySheet = "Inventory"

var inventoryHeader = []any{"No.", "Product", "Unit", "Purchased", "Sold", "Stock"}

// InventoryFileName returns the download name of an inventory export.
func InventoryFileName(now time.Time) string {
	return fmt.Sprintf("inventory-%s.xlsx", now.Format("2006-01-02"))
}

// WriteInventory writes one row per product, in the given order, to w.
func WriteInventory(w io.Writer, balances []stock.Balance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(inventorySheet, "A1", &inventoryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(inventorySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, b := range balances {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{b.ProductNumber, b.ProductName, b.UnitOfMeasure, b.Purchased, b.Sold, b.Stock}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(inventorySheet, "B", "B", 40); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(inventorySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
