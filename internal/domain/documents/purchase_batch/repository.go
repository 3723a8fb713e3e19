package purchase_batch

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// Repository defines persistence operations for batch headers. Lines are
// stored through purchase.Repository.
type Repository interface {
	Create(ctx context.Context, batch *Batch) error
	// Update writes header fields. RegisteredAt is never overwritten.
	Update(ctx context.Context, batch *Batch) error
	// Delete removes the batch. Its lines go with it through the FK cascade.
	Delete(ctx context.Context, batchID id.ID) error
	GetByID(ctx context.Context, batchID id.ID) (*Batch, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Batch], error)
	Summary(ctx context.Context, filter ListFilter) (Summary, error)

	// BatchIDsForProduct and DeleteEmpty back product deletion cleanup.
	BatchIDsForProduct(ctx context.Context, productID id.ID) ([]id.ID, error)
	DeleteEmpty(ctx context.Context, batchIDs []id.ID) ([]id.ID, error)
}

// ListFilter for filtering batches.
type ListFilter struct {
	domain.ListFilter

	Range domain.DateRange
	// Supplier matches as a case-insensitive substring.
	Supplier string
}

// Summary aggregates the batches matched by a filter.
type Summary struct {
	TotalSpent        types.Money `db:"total_spent" json:"totalSpent"`
	BatchCount        int64       `db:"batch_count" json:"batchCount"`
	ProductsPurchased int64       `db:"products_purchased" json:"productsPurchased"`
}
