package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/infrastructure/storage/postgres"
)

const purchaseBatchTable = "purchase_batches"

// batchTotalsJoin adds line aggregates to each batch.
const batchTotalsJoin = `LEFT JOIN (
	SELECT batch_id, SUM(quantity::numeric * unit_cost) AS total_cost, COUNT(*) AS product_count
	  FROM purchase_lines
	 WHERE batch_id IS NOT NULL
	 GROUP BY batch_id
) t ON t.batch_id = d.id`

// PurchaseBatchRepo implements purchase_batch.Repository and
// product.BatchSweeper.
type PurchaseBatchRepo struct {
	*BaseDocumentRepo[*purchase_batch.Batch]
}

// NewPurchaseBatchRepo creates a new purchase batch repository.
func NewPurchaseBatchRepo(txm *postgres.TxManager) *PurchaseBatchRepo {
	base := NewBaseDocumentRepo(
		txm,
		purchaseBatchTable,
		writeColumns[purchase_batch.Batch]("total_cost", "product_count"),
		func() *purchase_batch.Batch { return &purchase_batch.Batch{} },
	).
		WithJoin(batchTotalsJoin,
			"COALESCE(t.total_cost, 0) AS total_cost",
			"COALESCE(t.product_count, 0) AS product_count").
		WithOrderable(map[string]string{
			"supplier":  "d.supplier",
			"totalCost": "total_cost",
		})

	return &PurchaseBatchRepo{BaseDocumentRepo: base}
}

// Compile-time checks
var (
	_ purchase_batch.Repository = (*PurchaseBatchRepo)(nil)
	_ product.BatchSweeper      = (*PurchaseBatchRepo)(nil)
)

func batchConds(filter purchase_batch.ListFilter) squirrel.And {
	conds := dateRange(filter.Range)
	if filter.Supplier != "" {
		conds = append(conds, squirrel.ILike{"d.supplier": "%" + filter.Supplier + "%"})
	}
	return conds
}

// List implements purchase_batch.Repository.
func (r *PurchaseBatchRepo) List(ctx context.Context, filter purchase_batch.ListFilter) (domain.ListResult[*purchase_batch.Batch], error) {
	return r.BaseDocumentRepo.List(ctx, filter.ListFilter, batchConds(filter))
}

// Summary implements purchase_batch.Repository.
func (r *PurchaseBatchRepo) Summary(ctx context.Context, filter purchase_batch.ListFilter) (purchase_batch.Summary, error) {
	q := r.Builder().
		Select(
			"COALESCE(SUM(t.total_cost), 0) AS total_spent",
			"COUNT(*) AS batch_count",
			"COALESCE(SUM(t.product_count), 0) AS products_purchased",
		).
		From(purchaseBatchTable + " d").
		JoinClause(batchTotalsJoin)
	if conds := batchConds(filter); len(conds) > 0 {
		q = q.Where(conds)
	}

	var sum purchase_batch.Summary
	if err := r.QueryRowInto(ctx, q, &sum); err != nil {
		return sum, err
	}
	return sum, nil
}

// BatchIDsForProduct implements product.BatchSweeper.
func (r *PurchaseBatchRepo) BatchIDsForProduct(ctx context.Context, productID id.ID) ([]id.ID, error) {
	sql, args, err := r.Builder().
		Select("DISTINCT batch_id").
		From(purchaseLineTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"batch_id": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	ids := make([]id.ID, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("batches of product: %w", err)
	}
	return ids, nil
}

// DeleteEmpty implements product.BatchSweeper.
func (r *PurchaseBatchRepo) DeleteEmpty(ctx context.Context, batchIDs []id.ID) ([]id.ID, error) {
	removed := make([]id.ID, 0)
	if len(batchIDs) == 0 {
		return removed, nil
	}

	sql, args, err := r.Builder().
		Delete(purchaseBatchTable).
		Where(squirrel.Eq{"id": batchIDs}).
		Where("NOT EXISTS (SELECT 1 FROM purchase_lines l WHERE l.batch_id = purchase_batches.id)").
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete: %w", err)
	}

	if err := pgxscan.Select(ctx, r.Querier(ctx), &removed, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "delete", purchaseBatchTable)
	}
	return removed, nil
}
