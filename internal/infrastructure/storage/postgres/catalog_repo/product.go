package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	productTable = "products"

	// productNumberLockKey is the advisory lock key serializing product
	// number assignment.
	productNumberLockKey int64 = 0x73746f636b01
)

// nextProductNumberSQL finds the smallest positive number not in use:
// 1 when free, otherwise the first number whose successor is free.
const nextProductNumberSQL = `
SELECT COALESCE(
	(SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM products WHERE product_number = 1)),
	(SELECT p.product_number + 1
	   FROM products p
	  WHERE NOT EXISTS (SELECT 1 FROM products q WHERE q.product_number = p.product_number + 1)
	  ORDER BY p.product_number
	  LIMIT 1)
)`

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	base := NewBaseCatalogRepo(
		txm,
		productTable,
		postgres.ExtractDBColumns[product.Product](),
		func() *product.Product { return &product.Product{} },
	).
		WithImmutable("product_number", "created_at").
		WithSearch("name", "description").
		WithOrdering(map[string]string{
			"name":          "name",
			"productNumber": "product_number",
			"unitOfMeasure": "unit_of_measure",
			"createdAt":     "created_at",
		}, "name ASC, product_number ASC")

	return &ProductRepo{BaseCatalogRepo: base}
}

// Compile-time check
var _ product.Repository = (*ProductRepo)(nil)

// NamesByID implements product.Repository.
func (r *ProductRepo) NamesByID(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	names := make(map[id.ID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	sql, args, err := r.Builder().
		Select("id", "name").
		From(productTable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		ID   id.ID  `db:"id"`
		Name string `db:"name"`
	}
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("product names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// NextProductNumber implements product.Repository.
func (r *ProductRepo) NextProductNumber(ctx context.Context) (int, error) {
	var next int
	if err := r.Querier(ctx).QueryRow(ctx, nextProductNumberSQL).Scan(&next); err != nil {
		return 0, fmt.Errorf("next product number: %w", err)
	}
	return next, nil
}

// LockNumbering implements product.Repository. The lock is released when
// the surrounding transaction ends, so it must be called inside one.
func (r *ProductRepo) LockNumbering(ctx context.Context) error {
	if _, err := r.Querier(ctx).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", productNumberLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}
