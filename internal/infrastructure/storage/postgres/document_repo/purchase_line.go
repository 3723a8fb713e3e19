package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/infrastructure/storage/postgres"
)

const purchaseLineTable = "purchase_lines"

// productNameJoin adds product_name to documents referencing a product.
const productNameJoin = "JOIN products p ON p.id = d.product_id"

// PurchaseLineRepo implements purchase.Repository.
type PurchaseLineRepo struct {
	*BaseDocumentRepo[*purchase.Line]
}

// NewPurchaseLineRepo creates a new purchase line repository.
func NewPurchaseLineRepo(txm *postgres.TxManager) *PurchaseLineRepo {
	base := NewBaseDocumentRepo(
		txm,
		purchaseLineTable,
		writeColumns[purchase.Line]("product_name"),
		func() *purchase.Line { return &purchase.Line{} },
	).
		WithJoin(productNameJoin, "p.name AS product_name").
		WithOrderable(map[string]string{
			"quantity":    "d.quantity",
			"unitCost":    "d.unit_cost",
			"supplier":    "d.supplier",
			"productName": "p.name",
		})

	return &PurchaseLineRepo{BaseDocumentRepo: base}
}

// Compile-time check
var _ purchase.Repository = (*PurchaseLineRepo)(nil)

func purchaseConds(filter purchase.ListFilter) squirrel.And {
	conds := dateRange(filter.Range)
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"d.product_id": *filter.ProductID})
	}
	if filter.BatchID != nil {
		conds = append(conds, squirrel.Eq{"d.batch_id": *filter.BatchID})
	}
	return conds
}

// List implements purchase.Repository.
func (r *PurchaseLineRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.Line], error) {
	return r.BaseDocumentRepo.List(ctx, filter.ListFilter, purchaseConds(filter))
}

// Summary implements purchase.Repository.
func (r *PurchaseLineRepo) Summary(ctx context.Context, filter purchase.ListFilter) (purchase.Summary, error) {
	q := r.Builder().
		Select(
			"COALESCE(SUM(d.quantity::numeric * d.unit_cost), 0) AS total_spent",
			"COUNT(*) AS purchase_count",
		).
		From(purchaseLineTable + " d")
	if conds := purchaseConds(filter); len(conds) > 0 {
		q = q.Where(conds)
	}

	var sum purchase.Summary
	if err := r.QueryRowInto(ctx, q, &sum); err != nil {
		return sum, err
	}
	return sum, nil
}

// ListByBatches implements purchase.Repository.
func (r *PurchaseLineRepo) ListByBatches(ctx context.Context, batchIDs []id.ID) ([]*purchase.Line, error) {
	if len(batchIDs) == 0 {
		return []*purchase.Line{}, nil
	}
	q := r.baseSelect().
		Where(squirrel.Eq{"d.batch_id": batchIDs}).
		OrderBy("d.registered_at ASC", "d.id ASC")
	return r.Select(ctx, q)
}

// DeleteByBatch implements purchase.Repository.
func (r *PurchaseLineRepo) DeleteByBatch(ctx context.Context, batchID id.ID) error {
	sql, args, err := r.Builder().
		Delete(purchaseLineTable).
		Where(squirrel.Eq{"batch_id": batchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(err, "delete", purchaseLineTable)
	}
	return nil
}
