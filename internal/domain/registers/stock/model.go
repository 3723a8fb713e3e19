// Package stock derives product stock from purchases and sales.
//
// Stock is never stored: it is the sum of purchased quantities minus the sum
// of sold quantities, each sum defaulting to zero.
package stock

import (
	"stockbook/internal/core/id"
)

// Balance is the stock position of one product.
type Balance struct {
	ProductID     id.ID   `db:"product_id" json:"productId"`
	ProductNumber int     `db:"product_number" json:"productNumber"`
	ProductName   string  `db:"product_name" json:"productName"`
	UnitOfMeasure string  `db:"unit_of_measure" json:"unitOfMeasure"`
	Image         *string `db:"image" json:"image"`

	Purchased int64 `db:"total_purchased" json:"totalPurchased"`
	Sold      int64 `db:"total_sold" json:"totalSold"`
	Stock     int64 `db:"-" json:"stock"`
}

// Settle computes Stock from the purchased and sold totals. The result may
// be negative.
func (b *Balance) Settle() {
	b.Stock = b.Purchased - b.Sold
}
