package postgres

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"stockbook/internal/core/apperror"
)

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ParseOrderBy turns an API sort key into an ORDER BY expression.
// "-field" sorts descending, "field" or "+field" ascending. allowed maps
// API field names to SQL expressions; anything else is rejected. An empty
// orderBy yields fallback.
func ParseOrderBy(orderBy string, allowed map[string]string, fallback string) (string, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return fallback, nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewFieldValidation("orderBy", "invalid orderBy").WithDetail("orderBy", orderBy)
	}

	expr, ok := allowed[field]
	if !ok {
		return "", apperror.NewFieldValidation("orderBy", "invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("allowed", allowedKeys(allowed))
	}
	return expr + " " + direction, nil
}

func allowedKeys(allowed map[string]string) []string {
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	return keys
}

// FilterColumns keeps the entries of data whose key is in cols.
func FilterColumns(data map[string]any, cols []string) map[string]any {
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		if val, ok := data[col]; ok {
			out[col] = val
		}
	}
	return out
}

// Qualify prefixes each column with alias.
func Qualify(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = alias + "." + col
	}
	return out
}
