package reports

import (
	"context"

	"stockbook/internal/domain"
)

// Repository defines report data access.
type Repository interface {
	// FinancialTotals sums purchase costs and sale totals with dates inside
	// r, both ends inclusive. Empty sums are zero.
	FinancialTotals(ctx context.Context, r domain.DateRange) (FinancialTotals, error)
}
