package postgres

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/apperror"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "insert", "sales"))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "sales_product_id_fkey"}
	err := TranslateError(fk, "insert", "sales")
	assert.True(t, apperror.IsIntegrity(err))
	assert.Equal(t, http.StatusConflict, apperror.GetHTTPStatus(err))
	assert.ErrorIs(t, err, fk)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "products_product_number_key"}
	appErr, ok := apperror.AsAppError(TranslateError(dup, "insert", "products"))
	assert.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	check := &pgconn.PgError{Code: "23514"}
	assert.True(t, apperror.IsValidation(TranslateError(check, "update", "sales")))

	plain := errors.New("conn reset")
	err = TranslateError(plain, "delete", "products")
	assert.False(t, apperror.IsAppError(err))
	assert.EqualError(t, err, "delete products: conn reset")
}
