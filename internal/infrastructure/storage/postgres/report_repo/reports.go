// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/domain"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: postgres.Builder(),
	}
}

// Compile-time check
var _ reports.Repository = (*ReportRepo)(nil)

func inRange(q squirrel.SelectBuilder, r domain.DateRange) squirrel.SelectBuilder {
	if r.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *r.From})
	}
	if r.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *r.To})
	}
	return q
}

// financialQuery combines the purchase and sale aggregates in one
// statement: each side is a one-row subquery, cross joined.
func (r *ReportRepo) financialQuery(dr domain.DateRange) squirrel.SelectBuilder {
	purchases := inRange(r.builder.
		Select(
			"COALESCE(SUM(quantity::numeric * unit_cost), 0) AS total_expense",
			"COUNT(*) AS purchase_count",
		).
		From("purchase_lines"), dr)

	// Nested statements keep "?" so the outer Dollar format numbers every
	// argument in order.
	sales := inRange(r.builder.
		PlaceholderFormat(squirrel.Question).
		Select(
			"COALESCE(SUM(quantity::numeric * unit_price), 0) AS total_income",
			"COALESCE(SUM(quantity::numeric * unit_price) FILTER (WHERE paid), 0) AS paid_income",
			"COALESCE(SUM(quantity::numeric * unit_price) FILTER (WHERE NOT paid), 0) AS pending_income",
			"COUNT(*) AS sale_count",
		).
		From("sales"), dr)

	return r.builder.
		Select(
			"pa.total_expense", "pa.purchase_count",
			"sa.total_income", "sa.paid_income", "sa.pending_income", "sa.sale_count",
		).
		FromSelect(purchases, "pa").
		JoinClause(squirrel.ConcatExpr("CROSS JOIN (", sales, ") AS sa"))
}

// FinancialTotals implements reports.Repository.
func (r *ReportRepo) FinancialTotals(ctx context.Context, dr domain.DateRange) (reports.FinancialTotals, error) {
	var totals reports.FinancialTotals

	sql, args, err := r.financialQuery(dr).ToSql()
	if err != nil {
		return totals, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &totals, sql, args...); err != nil {
		return totals, fmt.Errorf("financial totals: %w", err)
	}
	return totals, nil
}
