// Package purchase provides the purchase line document.
//
// A purchase line records a quantity of one product bought on a date. Lines
// either stand alone or belong to a purchase batch.
package purchase

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

const maxSupplierLength = 200

// Line represents a single purchased product.
type Line struct {
	entity.Document

	// BatchID links the line to its batch. Nil for standalone purchases.
	BatchID *id.ID `db:"batch_id" json:"batchId,omitempty"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity int `db:"quantity" json:"quantity"`
	UnitCost int `db:"unit_cost" json:"unitCost"`
	// SaleValue is the intended selling price, informational only.
	SaleValue int `db:"sale_value" json:"saleValue"`

	Supplier string `db:"supplier" json:"supplier"`
	Notes    string `db:"notes" json:"notes"`

	// ProductName is filled on read.
	ProductName string `db:"product_name" json:"productName"`
}

// NewLine creates a purchase line with generated ID.
func NewLine(date time.Time, productID id.ID) *Line {
	return &Line{
		Document:  entity.NewDocument(date),
		ProductID: productID,
	}
}

// TotalCost returns quantity × unitCost.
func (l *Line) TotalCost() types.Money {
	return types.LineTotal(l.Quantity, l.UnitCost)
}

var _ entity.Validatable = (*Line)(nil)

// Validate implements entity.Validatable.
func (l *Line) Validate(ctx context.Context) error {
	if err := l.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(l.ProductID) {
		return apperror.NewFieldValidation("productId", "productId is required")
	}
	if l.Quantity < 1 {
		return apperror.NewFieldValidation("quantity", "quantity must be at least 1").
			WithDetail("value", l.Quantity)
	}
	if l.UnitCost < 1 {
		return apperror.NewFieldValidation("unitCost", "unitCost must be at least 1").
			WithDetail("value", l.UnitCost)
	}
	if l.SaleValue < 1 {
		return apperror.NewFieldValidation("saleValue", "saleValue must be at least 1").
			WithDetail("value", l.SaleValue)
	}

	l.Supplier = strings.TrimSpace(l.Supplier)
	if l.Supplier == "" {
		return apperror.NewFieldValidation("supplier", "supplier is required")
	}
	if len([]rune(l.Supplier)) > maxSupplierLength {
		return apperror.NewFieldValidation("supplier", "supplier is too long").
			WithDetail("max", maxSupplierLength)
	}
	return nil
}

// ValidateLines validates lines in order and tags the first failure with
// its 1-based line number.
func ValidateLines(ctx context.Context, lines []*Line) error {
	for i, line := range lines {
		if err := line.Validate(ctx); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("line", i+1)
			}
			return err
		}
	}
	return nil
}
