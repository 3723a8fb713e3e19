package dto

import (
	"time"

	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/registers/stock"
)

// --- Request DTOs ---

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	UnitOfMeasure string  `json:"unitOfMeasure" binding:"required"`
	Description   string  `json:"description"`
	Image         *string `json:"image"`
}

// ToEntity converts request to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Name, r.UnitOfMeasure)
	p.Description = r.Description
	p.Image = r.Image
	return p
}

// UpdateProductRequest represents a request to update a product.
// Omitted fields keep their stored values.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	UnitOfMeasure *string `json:"unitOfMeasure"`
	Description   *string `json:"description"`
	Image         *string `json:"image"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.UnitOfMeasure != nil {
		p.UnitOfMeasure = *r.UnitOfMeasure
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Image != nil {
		p.Image = r.Image
	}
}

// --- Response DTOs ---

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID            string    `json:"id"`
	ProductNumber int       `json:"productNumber"`
	Name          string    `json:"name"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Description   string    `json:"description"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
	Stock         *int64    `json:"stock,omitempty"`
}

// FromProduct converts domain entity to response DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		ProductNumber: p.ProductNumber,
		Name:          p.Name,
		UnitOfMeasure: p.UnitOfMeasure,
		Description:   p.Description,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
	}
}

// WithStock attaches the current stock.
func (r ProductResponse) WithStock(qty int64) ProductResponse {
	r.Stock = &qty
	return r
}

// DeleteProductResponse reports what a product delete removed.
type DeleteProductResponse struct {
	ProductID      string   `json:"productId"`
	RemovedBatches []string `json:"removedBatchIds"`
}

// FromDeleteResult converts the delete outcome.
func FromDeleteResult(r *product.DeleteResult) DeleteProductResponse {
	removed := make([]string, len(r.RemovedBatches))
	for i, batchID := range r.RemovedBatches {
		removed[i] = batchID.String()
	}
	return DeleteProductResponse{
		ProductID:      r.ProductID.String(),
		RemovedBatches: removed,
	}
}

// ProductStockResponse is one row of the product picker.
type ProductStockResponse struct {
	ID            string `json:"id"`
	ProductNumber int    `json:"productNumber"`
	Name          string `json:"name"`
	Stock         int64  `json:"stock"`
	UnitOfMeasure string `json:"unitOfMeasure"`
}

// FromBalanceAsProductStock converts a balance to the picker row.
func FromBalanceAsProductStock(b stock.Balance) ProductStockResponse {
	return ProductStockResponse{
		ID:            b.ProductID.String(),
		ProductNumber: b.ProductNumber,
		Name:          b.ProductName,
		Stock:         b.Stock,
		UnitOfMeasure: b.UnitOfMeasure,
	}
}
