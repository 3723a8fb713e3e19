package document_repo

import (
	"slices"

	"stockbook/internal/infrastructure/storage/postgres"
)

// writeColumns returns the db columns of T without the derived ones.
func writeColumns[T any](derived ...string) []string {
	return slices.DeleteFunc(postgres.ExtractDBColumns[T](), func(col string) bool {
		return slices.Contains(derived, col)
	})
}
