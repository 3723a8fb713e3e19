// Package document_repo stores dated documents: purchase batches, purchase
// lines and sales.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/infrastructure/storage/postgres"
)

// documentOrder is the listing order shared by every document table.
const documentOrder = "d.date DESC, d.registered_at DESC, d.id DESC"

// BaseDocumentRepo is the generic part of a document repository. Reads
// alias the table as "d"; joins contribute derived read-only columns.
type BaseDocumentRepo[T any] struct {
	txm   *postgres.TxManager
	table string
	newFn func() T

	stored    []string // columns written on insert and update
	selected  []string // d.-qualified stored columns plus derived ones
	joins     []string
	orderable map[string]string
}

// NewBaseDocumentRepo creates a document repository over table. stored
// lists the columns the entity's db tags map to a real column.
func NewBaseDocumentRepo[T any](
	txm *postgres.TxManager,
	table string,
	stored []string,
	newFn func() T,
) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		txm:       txm,
		table:     table,
		newFn:     newFn,
		stored:    stored,
		selected:  postgres.Qualify("d", stored),
		orderable: map[string]string{"date": "d.date", "registeredAt": "d.registered_at"},
	}
}

// WithJoin adds a join clause and the select expressions it makes available.
func (r *BaseDocumentRepo[T]) WithJoin(clause string, exprs ...string) *BaseDocumentRepo[T] {
	r.joins = append(r.joins, clause)
	r.selected = append(r.selected, exprs...)
	return r
}

// WithOrderable registers extra sort keys.
func (r *BaseDocumentRepo[T]) WithOrderable(keys map[string]string) *BaseDocumentRepo[T] {
	for key, expr := range keys {
		r.orderable[key] = expr
	}
	return r
}

func (r *BaseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return postgres.Builder()
}

func (r *BaseDocumentRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// values orders the db-tagged fields of entity like r.stored.
func (r *BaseDocumentRepo[T]) values(entity T) (map[string]any, []any, error) {
	data := postgres.StructToMap(entity)
	if _, ok := data["id"]; !ok {
		return nil, nil, fmt.Errorf("%s: entity has no db:\"id\" column", r.table)
	}
	vals := make([]any, 0, len(r.stored))
	for _, col := range r.stored {
		vals = append(vals, data[col])
	}
	return data, vals, nil
}

// write executes stmt; for update and delete zero affected rows is NotFound.
func (r *BaseDocumentRepo[T]) write(ctx context.Context, op string, stmt squirrel.Sqlizer, key any) error {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, op, r.table)
	}
	if op != "insert" && tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.table, key)
	}
	return nil
}

// Create inserts one document.
func (r *BaseDocumentRepo[T]) Create(ctx context.Context, entity T) error {
	return r.CreateMany(ctx, []T{entity})
}

// CreateMany inserts all entities in a single statement.
func (r *BaseDocumentRepo[T]) CreateMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	stmt := r.Builder().Insert(r.table).Columns(r.stored...)
	for _, e := range entities {
		_, vals, err := r.values(e)
		if err != nil {
			return err
		}
		stmt = stmt.Values(vals...)
	}
	return r.write(ctx, "insert", stmt, nil)
}

// Update rewrites the stored columns. id and registered_at never change.
func (r *BaseDocumentRepo[T]) Update(ctx context.Context, entity T) error {
	data, _, err := r.values(entity)
	if err != nil {
		return err
	}
	set := make(map[string]any, len(r.stored))
	for _, col := range r.stored {
		if col != "id" && col != "registered_at" {
			set[col] = data[col]
		}
	}
	stmt := r.Builder().Update(r.table).SetMap(set).Where(squirrel.Eq{"id": data["id"]})
	return r.write(ctx, "update", stmt, data["id"])
}

// Delete removes one document.
func (r *BaseDocumentRepo[T]) Delete(ctx context.Context, docID id.ID) error {
	stmt := r.Builder().Delete(r.table).Where(squirrel.Eq{"id": docID})
	return r.write(ctx, "delete", stmt, docID)
}

// baseSelect reads the selected columns through every join.
func (r *BaseDocumentRepo[T]) baseSelect() squirrel.SelectBuilder {
	q := r.Builder().Select(r.selected...).From(r.table + " d")
	for _, clause := range r.joins {
		q = q.JoinClause(clause)
	}
	return q
}

// GetByID loads one document with its derived columns.
func (r *BaseDocumentRepo[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	doc := r.newFn()
	err := r.QueryRowInto(ctx, r.baseSelect().Where(squirrel.Eq{"d.id": docID}), doc)
	if pgxscan.NotFound(err) {
		return doc, apperror.NewNotFound(r.table, docID)
	}
	return doc, err
}

// Select scans every row q returns.
func (r *BaseDocumentRepo[T]) Select(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	docs := []T{}
	if err := pgxscan.Select(ctx, r.Querier(ctx), &docs, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}
	return docs, nil
}

// QueryRowInto scans the single row q returns into dest. A missing row is
// reported with an error pgxscan.NotFound recognizes.
func (r *BaseDocumentRepo[T]) QueryRowInto(ctx context.Context, q squirrel.SelectBuilder, dest any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	if err := pgxscan.Get(ctx, r.Querier(ctx), dest, sql, args...); err != nil {
		return fmt.Errorf("query %s: %w", r.table, err)
	}
	return nil
}

// dateRange turns the inclusive bounds of dr into conditions on d.date.
func dateRange(dr domain.DateRange) squirrel.And {
	conds := squirrel.And{}
	if dr.From != nil {
		conds = append(conds, squirrel.GtOrEq{"d.date": *dr.From})
	}
	if dr.To != nil {
		conds = append(conds, squirrel.LtOrEq{"d.date": *dr.To})
	}
	return conds
}

// List returns one page of the documents matching conds plus their total.
// Counting skips the joins: they only add columns.
func (r *BaseDocumentRepo[T]) List(ctx context.Context, filter domain.ListFilter, conds squirrel.And) (domain.ListResult[T], error) {
	page := domain.ListResult[T]{Items: []T{}, Limit: filter.Limit, Offset: filter.Offset}
	if len(filter.IDs) > 0 {
		conds = append(conds, squirrel.Eq{"d.id": filter.IDs})
	}

	order, err := postgres.ParseOrderBy(filter.OrderBy, r.orderable, documentOrder)
	if err != nil {
		return page, err
	}

	count := r.Builder().Select("COUNT(*)").From(r.table + " d")
	sel := r.baseSelect().OrderBy(order)
	if len(conds) > 0 {
		count, sel = count.Where(conds), sel.Where(conds)
	}
	if filter.Limit > 0 {
		sel = sel.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sel = sel.Offset(uint64(filter.Offset))
	}

	if err := r.QueryRowInto(ctx, count, &page.TotalCount); err != nil {
		return page, err
	}
	if page.Items, err = r.Select(ctx, sel); err != nil {
		return page, err
	}
	return page, nil
}
