// Package purchase_batch provides the purchase batch document: a supplier
// delivery made of several purchase lines written together.
package purchase_batch

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents/purchase"
)

const maxSupplierLength = 200

// Batch represents a purchase batch with its lines.
type Batch struct {
	entity.Document

	Supplier string `db:"supplier" json:"supplier"`
	Notes    string `db:"notes" json:"notes"`

	// Aggregates over the batch lines, filled on read.
	TotalCost    types.Money `db:"total_cost" json:"totalCost"`
	ProductCount int         `db:"product_count" json:"productCount"`

	// Table part
	Lines []*purchase.Line `db:"-" json:"lines"`
}

// NewBatch creates a batch with generated ID.
func NewBatch(date time.Time, supplier string) *Batch {
	return &Batch{
		Document:  entity.NewDocument(date),
		Supplier:  supplier,
		TotalCost: types.Zero(),
		Lines:     make([]*purchase.Line, 0),
	}
}

// Validate checks the batch header.
func (b *Batch) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}
	b.Supplier = strings.TrimSpace(b.Supplier)
	if b.Supplier == "" {
		return apperror.NewFieldValidation("supplier", "supplier is required")
	}
	if len([]rune(b.Supplier)) > maxSupplierLength {
		return apperror.NewFieldValidation("supplier", "supplier is too long").
			WithDetail("max", maxSupplierLength)
	}
	return nil
}

// AttachLines makes lines belong to the batch and recalculates totals.
func (b *Batch) AttachLines(lines []*purchase.Line) {
	if lines == nil {
		lines = make([]*purchase.Line, 0)
	}
	batchID := b.ID
	for _, line := range lines {
		line.BatchID = &batchID
	}
	b.Lines = lines
	b.recalculateTotals()
}

// recalculateTotals updates batch aggregates from lines.
func (b *Batch) recalculateTotals() {
	total := types.Zero()
	for _, line := range b.Lines {
		total = total.Add(line.TotalCost())
	}
	b.TotalCost = total
	b.ProductCount = len(b.Lines)
}
