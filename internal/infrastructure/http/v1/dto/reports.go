package dto

import (
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/reports"
)

// InventoryItemResponse is one row of the inventory list.
type InventoryItemResponse struct {
	ProductID      string  `json:"productId"`
	ProductNumber  int     `json:"productNumber"`
	ProductName    string  `json:"productName"`
	Image          *string `json:"image"`
	UnitOfMeasure  string  `json:"unitOfMeasure"`
	Stock          int64   `json:"stock"`
	TotalPurchased int64   `json:"totalPurchased"`
	TotalSold      int64   `json:"totalSold"`
}

// FromInventoryItem converts an inventory row.
func FromInventoryItem(i reports.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ProductID:      i.ProductID.String(),
		ProductNumber:  i.ProductNumber,
		ProductName:    i.ProductName,
		Image:          i.Image,
		UnitOfMeasure:  i.UnitOfMeasure,
		Stock:          i.Stock,
		TotalPurchased: i.Purchased,
		TotalSold:      i.Sold,
	}
}

// FinancialReportResponse is the financial report with amounts as strings.
type FinancialReportResponse struct {
	StartDate     *Date  `json:"startDate"`
	EndDate       *Date  `json:"endDate"`
	TotalIncome   string `json:"totalIncome"`
	TotalExpense  string `json:"totalExpense"`
	Profit        string `json:"profit"`
	PaidIncome    string `json:"paidIncome"`
	PendingIncome string `json:"pendingIncome"`
	SaleCount     int64  `json:"saleCount"`
	PurchaseCount int64  `json:"purchaseCount"`
}

// FromFinancialReport converts the report.
func FromFinancialReport(r *reports.FinancialReport) FinancialReportResponse {
	resp := FinancialReportResponse{
		TotalIncome:   Money(r.TotalIncome),
		TotalExpense:  Money(r.TotalExpense),
		Profit:        Money(r.Profit),
		PaidIncome:    Money(r.PaidIncome),
		PendingIncome: Money(r.PendingIncome),
		SaleCount:     r.SaleCount,
		PurchaseCount: r.PurchaseCount,
	}
	if r.StartDate != nil {
		d := NewDate(*r.StartDate)
		resp.StartDate = &d
	}
	if r.EndDate != nil {
		d := NewDate(*r.EndDate)
		resp.EndDate = &d
	}
	return resp
}

// AuditHistoryResponse wraps change trail entries.
type AuditHistoryResponse struct {
	Items []audit.Entry `json:"items"`
}
