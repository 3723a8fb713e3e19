package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups, downs := 0, 0
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
			_, err := fs.Stat(files, strings.TrimSuffix(name, ".up.sql")+".down.sql")
			assert.NoError(t, err, "missing down for %s", name)
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitSchema_Cascades(t *testing.T) {
	body, err := fs.ReadFile(files, "sql/000001_init.up.sql")
	require.NoError(t, err)
	sql := string(body)

	assert.Contains(t, sql, "batch_id      UUID REFERENCES purchase_batches (id) ON DELETE CASCADE")
	assert.Contains(t, sql, "product_id    UUID NOT NULL REFERENCES products (id) ON DELETE CASCADE")
	assert.Contains(t, sql, "UNIQUE (product_number)")
}
