package purchase

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// Repository defines persistence operations for purchase lines.
type Repository interface {
	Create(ctx context.Context, line *Line) error
	// CreateMany inserts lines in one statement.
	CreateMany(ctx context.Context, lines []*Line) error
	Update(ctx context.Context, line *Line) error
	Delete(ctx context.Context, lineID id.ID) error
	GetByID(ctx context.Context, lineID id.ID) (*Line, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Line], error)
	Summary(ctx context.Context, filter ListFilter) (Summary, error)

	// ListByBatches returns the lines of the given batches in insertion order.
	ListByBatches(ctx context.Context, batchIDs []id.ID) ([]*Line, error)
	// DeleteByBatch removes every line of a batch.
	DeleteByBatch(ctx context.Context, batchID id.ID) error
}

// ListFilter for filtering purchase lines.
type ListFilter struct {
	domain.ListFilter

	Range     domain.DateRange
	ProductID *id.ID
	BatchID   *id.ID
}

// Summary aggregates the lines matched by a filter.
type Summary struct {
	TotalSpent    types.Money `db:"total_spent" json:"totalSpent"`
	PurchaseCount int64       `db:"purchase_count" json:"purchaseCount"`
}
