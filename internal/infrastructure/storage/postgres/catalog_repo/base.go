// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

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

// BaseCatalogRepo holds the table metadata shared by reference-data
// repositories and implements their plain CRUD.
type BaseCatalogRepo[T any] struct {
	txm     *postgres.TxManager
	table   string
	columns []string
	newFn   func() T

	// insertOnly columns keep the value they were created with.
	insertOnly   map[string]bool
	sortKeys     map[string]string
	defaultOrder string
	searchable   []string
}

// NewBaseCatalogRepo creates a new base catalog repository over table.
func NewBaseCatalogRepo[T any](
	txm *postgres.TxManager,
	table string,
	columns []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txm:          txm,
		table:        table,
		columns:      columns,
		newFn:        newFn,
		insertOnly:   map[string]bool{"id": true},
		sortKeys:     map[string]string{"id": "id"},
		defaultOrder: "id ASC",
	}
}

// WithImmutable marks columns that Update leaves untouched.
func (r *BaseCatalogRepo[T]) WithImmutable(cols ...string) *BaseCatalogRepo[T] {
	for _, col := range cols {
		r.insertOnly[col] = true
	}
	return r
}

// WithOrdering replaces the sortable keys and the fallback ORDER BY.
func (r *BaseCatalogRepo[T]) WithOrdering(keys map[string]string, fallback string) *BaseCatalogRepo[T] {
	r.sortKeys = keys
	r.defaultOrder = fallback
	return r
}

// WithSearch sets the columns matched case-insensitively by ListFilter.Search.
func (r *BaseCatalogRepo[T]) WithSearch(cols ...string) *BaseCatalogRepo[T] {
	r.searchable = cols
	return r
}

// Builder returns the dollar-placeholder statement builder.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return postgres.Builder()
}

// Querier returns the transaction bound to ctx, or the pool.
func (r *BaseCatalogRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// row flattens entity into its db-tagged column values.
func (r *BaseCatalogRepo[T]) row(entity T) (map[string]any, error) {
	data := postgres.StructToMap(entity)
	if _, ok := data["id"]; !ok {
		return nil, fmt.Errorf("%s: entity has no db:\"id\" column", r.table)
	}
	return data, nil
}

// exec runs a single-row write and reports a missing row as NotFound.
func (r *BaseCatalogRepo[T]) exec(ctx context.Context, op string, q squirrel.Sqlizer, entityID any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, op, r.table)
	}
	if op != "insert" && tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.table, entityID)
	}
	return nil
}

// Create inserts entity.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) error {
	data, err := r.row(entity)
	if err != nil {
		return err
	}
	stmt := r.Builder().Insert(r.table).SetMap(postgres.FilterColumns(data, r.columns))
	return r.exec(ctx, "insert", stmt, data["id"])
}

// Update overwrites every column not marked immutable.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	data, err := r.row(entity)
	if err != nil {
		return err
	}

	set := make(map[string]any, len(r.columns))
	for _, col := range r.columns {
		if v, ok := data[col]; ok && !r.insertOnly[col] {
			set[col] = v
		}
	}

	stmt := r.Builder().Update(r.table).SetMap(set).Where(squirrel.Eq{"id": data["id"]})
	return r.exec(ctx, "update", stmt, data["id"])
}

// Delete removes the row with entityID.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	stmt := r.Builder().Delete(r.table).Where(squirrel.Eq{"id": entityID})
	return r.exec(ctx, "delete", stmt, entityID)
}

// GetByID loads one entity.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	sql, args, err := r.Builder().
		Select(r.columns...).
		From(r.table).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build select: %w", err)
	}

	err = pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...)
	switch {
	case pgxscan.NotFound(err):
		return entity, apperror.NewNotFound(r.table, entityID)
	case err != nil:
		return entity, fmt.Errorf("get %s: %w", r.table, err)
	}
	return entity, nil
}

// where collects the conditions ListFilter implies.
func (r *BaseCatalogRepo[T]) where(filter domain.ListFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" && len(r.searchable) > 0 {
		like := "%" + filter.Search + "%"
		match := squirrel.Or{}
		for _, col := range r.searchable {
			match = append(match, squirrel.ILike{col: like})
		}
		conds = append(conds, match)
	}
	if len(filter.IDs) > 0 {
		conds = append(conds, squirrel.Eq{"id": filter.IDs})
	}
	return conds
}

// List returns one page of entities plus the unpaginated total.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	page := domain.ListResult[T]{Items: []T{}, Limit: filter.Limit, Offset: filter.Offset}
	conds := r.where(filter)

	order, err := postgres.ParseOrderBy(filter.OrderBy, r.sortKeys, r.defaultOrder)
	if err != nil {
		return page, err
	}

	countSQL, countArgs, err := r.Builder().Select("COUNT(*)").From(r.table).Where(conds).ToSql()
	if err != nil {
		return page, fmt.Errorf("build count: %w", err)
	}
	q := r.Querier(ctx)
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("count %s: %w", r.table, err)
	}

	sel := r.Builder().Select(r.columns...).From(r.table).Where(conds).OrderBy(order)
	if filter.Limit > 0 {
		sel = sel.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sel = sel.Offset(uint64(filter.Offset))
	}
	sql, args, err := sel.ToSql()
	if err != nil {
		return page, fmt.Errorf("build select: %w", err)
	}
	if err := pgxscan.Select(ctx, q, &page.Items, sql, args...); err != nil {
		return page, fmt.Errorf("list %s: %w", r.table, err)
	}
	return page, nil
}
