package sale

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// Repository defines persistence operations for sales.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, saleID id.ID) error
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)
	Summary(ctx context.Context, filter ListFilter) (Summary, error)
}

// ListFilter for filtering sales.
type ListFilter struct {
	domain.ListFilter

	Range     domain.DateRange
	ProductID *id.ID
	Channel   *Channel
	Paid      *bool
}

// Summary aggregates the sales matched by a filter.
type Summary struct {
	TotalIncome   types.Money `db:"total_income" json:"totalIncome"`
	PaidIncome    types.Money `db:"paid_income" json:"paidIncome"`
	PendingIncome types.Money `db:"pending_income" json:"pendingIncome"`
	SaleCount     int64       `db:"sale_count" json:"saleCount"`
}
