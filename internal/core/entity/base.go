// Package entity holds the fields every stored record shares.
package entity

import (
	"context"

	"stockbook/internal/core/id"
)

// Validatable entities check their own fields without touching storage.
// A failure is an *apperror.AppError naming the offending field.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity is the surrogate key embedded in products and documents.
type BaseEntity struct {
	ID id.ID `db:"id" json:"id"`
}

func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: id.New()}
}

// GetID lets embedding types satisfy numerator.Dated.
func (b *BaseEntity) GetID() id.ID { return b.ID }
