package product

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	// Update writes mutable fields. ProductNumber and CreatedAt are never
	// overwritten.
	Update(ctx context.Context, p *Product) error
	// Delete removes the product. Purchase lines and sales of the product
	// go with it through FK cascades.
	Delete(ctx context.Context, productID id.ID) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// NamesByID returns the names of the products that exist among ids.
	NamesByID(ctx context.Context, ids []id.ID) (map[id.ID]string, error)

	// NextProductNumber returns the smallest positive product number not in use.
	NextProductNumber(ctx context.Context) (int, error)

	// LockNumbering serializes product number assignment until the
	// surrounding transaction ends.
	LockNumbering(ctx context.Context) error
}

// BatchSweeper removes purchase batches emptied by a product deletion.
type BatchSweeper interface {
	// BatchIDsForProduct returns the batches holding at least one line of
	// the product.
	BatchIDsForProduct(ctx context.Context, productID id.ID) ([]id.ID, error)

	// DeleteEmpty deletes those of batchIDs that have no lines left and
	// returns the ids it deleted.
	DeleteEmpty(ctx context.Context, batchIDs []id.ID) ([]id.ID, error)
}
