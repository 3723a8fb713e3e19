// Package reports provides the financial report and the inventory list.
package reports

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/registers/stock"
)

// FinancialTotals are the raw sums a repository returns for a date range.
type FinancialTotals struct {
	TotalExpense  types.Money `db:"total_expense"`
	TotalIncome   types.Money `db:"total_income"`
	PaidIncome    types.Money `db:"paid_income"`
	PendingIncome types.Money `db:"pending_income"`
	SaleCount     int64       `db:"sale_count"`
	PurchaseCount int64       `db:"purchase_count"`
}

// FinancialReport summarizes income and expense over an optional range.
type FinancialReport struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	TotalIncome   types.Money `json:"totalIncome"`
	TotalExpense  types.Money `json:"totalExpense"`
	Profit        types.Money `json:"profit"`
	PaidIncome    types.Money `json:"paidIncome"`
	PendingIncome types.Money `json:"pendingIncome"`
	SaleCount     int64       `json:"saleCount"`
	PurchaseCount int64       `json:"purchaseCount"`
}

// NewFinancialReport derives the report from totals. Profit is income minus
// expense and may be negative.
func NewFinancialReport(t FinancialTotals) *FinancialReport {
	return &FinancialReport{
		TotalIncome:   t.TotalIncome,
		TotalExpense:  t.TotalExpense,
		Profit:        t.TotalIncome.Sub(t.TotalExpense),
		PaidIncome:    t.PaidIncome,
		PendingIncome: t.PendingIncome,
		SaleCount:     t.SaleCount,
		PurchaseCount: t.PurchaseCount,
	}
}

// InventoryItem is one row of the inventory list.
type InventoryItem = stock.Balance
