// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/storage/postgres"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: postgres.Builder(),
	}
}

// Compile-time check
var _ stock.Repository = (*StockRepo)(nil)

// balancesQuery sums purchases and sales per product in separate subqueries
// so neither side multiplies the other's rows.
func (r *StockRepo) balancesQuery(productIDs []id.ID) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"p.id AS product_id",
			"p.product_number",
			"p.name AS product_name",
			"p.unit_of_measure",
			"p.image",
			"COALESCE(pl.qty, 0) AS total_purchased",
			"COALESCE(s.qty, 0) AS total_sold",
		).
		From("products p").
		LeftJoin("(SELECT product_id, SUM(quantity) AS qty FROM purchase_lines GROUP BY product_id) pl ON pl.product_id = p.id").
		LeftJoin("(SELECT product_id, SUM(quantity) AS qty FROM sales GROUP BY product_id) s ON s.product_id = p.id").
		OrderBy("p.product_number ASC")

	if len(productIDs) > 0 {
		q = q.Where(squirrel.Eq{"p.id": productIDs})
	}
	return q
}

// Balances implements stock.Repository.
func (r *StockRepo) Balances(ctx context.Context, productIDs []id.ID) ([]stock.Balance, error) {
	sql, args, err := r.balancesQuery(productIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	balances := make([]stock.Balance, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("stock balances: %w", err)
	}
	return balances, nil
}
