package entity

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// Document is the base type for dated business records: purchase batches,
// purchase lines and sales.
type Document struct {
	BaseEntity

	// Date is the business date of the record (calendar day, no clock part)
	Date time.Time `db:"date" json:"date"`

	// RegisteredAt is set once when the record is first stored
	RegisteredAt time.Time `db:"registered_at" json:"registeredAt"`

	// SequenceNumber is derived from the distinct dates of the record kind
	// at read time. It is never persisted.
	SequenceNumber int `db:"-" json:"sequenceNumber"`
}

// NewDocument creates a new Document with generated ID for the given date.
func NewDocument(date time.Time) Document {
	return Document{
		BaseEntity:   NewBaseEntity(),
		Date:         types.TruncateDate(date),
		RegisteredAt: time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewFieldValidation("date", "date is required")
	}
	return nil
}

// GetDate returns the business date.
func (d *Document) GetDate() time.Time {
	return d.Date
}

// SetSequenceNumber stores the derived ordinal for serialization.
func (d *Document) SetSequenceNumber(n int) {
	d.SequenceNumber = n
}
