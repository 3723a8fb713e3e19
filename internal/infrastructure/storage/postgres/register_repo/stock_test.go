package register_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
)

func TestBalancesQuery_AllProducts(t *testing.T) {
	sql, args, err := NewStockRepo(nil).balancesQuery(nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "COALESCE(pl.qty, 0) AS total_purchased")
	assert.Contains(t, sql, "COALESCE(s.qty, 0) AS total_sold")
	assert.Contains(t, sql, "LEFT JOIN (SELECT product_id, SUM(quantity) AS qty FROM purchase_lines GROUP BY product_id) pl")
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBalancesQuery_SelectedProducts(t *testing.T) {
	a, b := id.New(), id.New()
	sql, args, err := NewStockRepo(nil).balancesQuery([]id.ID{a, b}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE p.id IN ($1,$2)")
	assert.Equal(t, []any{a, b}, args)
}
