// Package documents holds helpers shared by the purchase and sale documents.
package documents

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

// ProductNames looks up product names by id. Missing ids are simply absent
// from the result.
type ProductNames interface {
	NamesByID(ctx context.Context, ids []id.ID) (map[id.ID]string, error)
}

// ProductResolver checks that the products referenced by a document exist.
type ProductResolver struct {
	products ProductNames
}

// NewProductResolver creates a new ProductResolver.
func NewProductResolver(products ProductNames) *ProductResolver {
	return &ProductResolver{products: products}
}

// ResolveLines resolves the product of every line with a single lookup.
// The first unknown product yields a "Product not found" validation error
// carrying its 1-based line number.
func (r *ProductResolver) ResolveLines(ctx context.Context, productIDs []id.ID) (map[id.ID]string, error) {
	names, err := r.lookup(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for i, productID := range productIDs {
		if _, ok := names[productID]; !ok {
			return nil, productNotFound(productID).WithDetail("line", i+1)
		}
	}
	return names, nil
}

// ResolveOne resolves a single product reference and returns its name.
func (r *ProductResolver) ResolveOne(ctx context.Context, productID id.ID) (string, error) {
	names, err := r.lookup(ctx, []id.ID{productID})
	if err != nil {
		return "", err
	}
	name, ok := names[productID]
	if !ok {
		return "", productNotFound(productID)
	}
	return name, nil
}

func (r *ProductResolver) lookup(ctx context.Context, productIDs []id.ID) (map[id.ID]string, error) {
	unique := make([]id.ID, 0, len(productIDs))
	seen := make(map[id.ID]struct{}, len(productIDs))
	for _, productID := range productIDs {
		if _, ok := seen[productID]; ok {
			continue
		}
		seen[productID] = struct{}{}
		unique = append(unique, productID)
	}
	if len(unique) == 0 {
		return map[id.ID]string{}, nil
	}

	names, err := r.products.NamesByID(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	return names, nil
}

func productNotFound(productID id.ID) *apperror.AppError {
	return apperror.NewFieldValidation("productId", "Product not found").
		WithDetail("productId", productID.String())
}
