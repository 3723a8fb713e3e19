// Package product provides the product catalog.
package product

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

const (
	maxNameLength = 200
	maxUnitLength = 100
)

// Product is a catalog item that purchases and sales refer to.
type Product struct {
	entity.BaseEntity

	// ProductNumber is the smallest positive integer free at creation time.
	// It never changes afterwards.
	ProductNumber int `db:"product_number" json:"productNumber"`

	Name          string    `db:"name" json:"name"`
	UnitOfMeasure string    `db:"unit_of_measure" json:"unitOfMeasure"`
	Description   string    `db:"description" json:"description"`
	Image         *string   `db:"image" json:"image,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// NewProduct creates a Product with generated ID. The product number is
// assigned by the service when the product is stored.
func NewProduct(name, unitOfMeasure string) *Product {
	return &Product{
		BaseEntity:    entity.NewBaseEntity(),
		Name:          name,
		UnitOfMeasure: unitOfMeasure,
		CreatedAt:     time.Now().UTC(),
	}
}

var _ entity.Validatable = (*Product)(nil)

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	p.Name = strings.TrimSpace(p.Name)
	p.UnitOfMeasure = strings.TrimSpace(p.UnitOfMeasure)

	if p.Name == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if utf8.RuneCountInString(p.Name) > maxNameLength {
		return apperror.NewFieldValidation("name", "name is too long").
			WithDetail("max", maxNameLength)
	}
	if p.UnitOfMeasure == "" {
		return apperror.NewFieldValidation("unitOfMeasure", "unitOfMeasure is required")
	}
	if utf8.RuneCountInString(p.UnitOfMeasure) > maxUnitLength {
		return apperror.NewFieldValidation("unitOfMeasure", "unitOfMeasure is too long").
			WithDetail("max", maxUnitLength)
	}
	if p.ProductNumber < 0 {
		return apperror.NewFieldValidation("productNumber", "productNumber must be positive")
	}
	if p.Image != nil && strings.TrimSpace(*p.Image) == "" {
		p.Image = nil
	}
	return nil
}

// SmallestUnused returns the smallest positive integer missing from used,
// which must be sorted ascending. Duplicates and non-positive values are
// tolerated.
func SmallestUnused(used []int) int {
	next := 1
	for _, n := range used {
		if n < next {
			continue
		}
		if n > next {
			break
		}
		next++
	}
	return next
}
