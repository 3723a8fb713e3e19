package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/storage/postgres"
)

const saleTable = "sales"

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.Sale]
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	base := NewBaseDocumentRepo(
		txm,
		saleTable,
		writeColumns[sale.Sale]("product_name"),
		func() *sale.Sale { return &sale.Sale{} },
	).
		WithJoin(productNameJoin, "p.name AS product_name").
		WithOrderable(map[string]string{
			"customer":    "d.customer",
			"quantity":    "d.quantity",
			"unitPrice":   "d.unit_price",
			"productName": "p.name",
		})

	return &SaleRepo{BaseDocumentRepo: base}
}

// Compile-time check
var _ sale.Repository = (*SaleRepo)(nil)

func saleConds(filter sale.ListFilter) squirrel.And {
	conds := dateRange(filter.Range)
	if filter.ProductID != nil {
		conds = append(conds, squirrel.Eq{"d.product_id": *filter.ProductID})
	}
	if filter.Channel != nil {
		conds = append(conds, squirrel.Eq{"d.channel": string(*filter.Channel)})
	}
	if filter.Paid != nil {
		conds = append(conds, squirrel.Eq{"d.paid": *filter.Paid})
	}
	return conds
}

// List implements sale.Repository.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	return r.BaseDocumentRepo.List(ctx, filter.ListFilter, saleConds(filter))
}

// Summary implements sale.Repository.
func (r *SaleRepo) Summary(ctx context.Context, filter sale.ListFilter) (sale.Summary, error) {
	q := r.Builder().
		Select(
			"COALESCE(SUM(d.quantity::numeric * d.unit_price), 0) AS total_income",
			"COALESCE(SUM(d.quantity::numeric * d.unit_price) FILTER (WHERE d.paid), 0) AS paid_income",
			"COALESCE(SUM(d.quantity::numeric * d.unit_price) FILTER (WHERE NOT d.paid), 0) AS pending_income",
			"COUNT(*) AS sale_count",
		).
		From(saleTable + " d")
	if conds := saleConds(filter); len(conds) > 0 {
		q = q.Where(conds)
	}

	var sum sale.Summary
	if err := r.QueryRowInto(ctx, q, &sum); err != nil {
		return sum, err
	}
	return sum, nil
}
