package stock

import (
	"context"

	"stockbook/internal/core/id"
)

// Repository reads quantity totals per product.
type Repository interface {
	// Balances returns the totals of the given products, or of every product
	// when productIDs is empty, ordered by product number. Products without
	// purchases or sales are included with zero totals.
	Balances(ctx context.Context, productIDs []id.ID) ([]Balance, error)
}
