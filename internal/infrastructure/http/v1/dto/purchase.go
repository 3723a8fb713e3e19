package dto

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
)

// --- Request DTOs ---

// PurchaseLineRequest is a purchase line in create/update requests, on its
// own or inside a batch.
type PurchaseLineRequest struct {
	Date      *Date  `json:"date"`
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity"`
	UnitCost  int    `json:"unitCost"`
	SaleValue int    `json:"saleValue"`
	Supplier  string `json:"supplier"`
	Notes     string `json:"notes"`
}

// ToEntity converts request to domain entity. ProductID is validated by
// binding before this is called.
func (r *PurchaseLineRequest) ToEntity() *purchase.Line {
	productID, _ := id.Parse(r.ProductID)
	line := purchase.NewLine(dateOrZero(r.Date), productID)
	r.applyFields(line)
	return line
}

// ApplyTo overwrites an existing line, keeping its batch and registration.
func (r *PurchaseLineRequest) ApplyTo(line *purchase.Line) {
	line.ProductID, _ = id.Parse(r.ProductID)
	if r.Date != nil {
		line.Date = r.Date.Time()
	}
	r.applyFields(line)
}

func (r *PurchaseLineRequest) applyFields(line *purchase.Line) {
	line.Quantity = r.Quantity
	line.UnitCost = r.UnitCost
	line.SaleValue = r.SaleValue
	line.Supplier = r.Supplier
	line.Notes = r.Notes
}

// linesToEntities converts request lines; nil stays nil.
func linesToEntities(reqs []PurchaseLineRequest) []*purchase.Line {
	if reqs == nil {
		return nil
	}
	lines := make([]*purchase.Line, len(reqs))
	for i := range reqs {
		lines[i] = reqs[i].ToEntity()
	}
	return lines
}

// CreateBatchRequest represents a request to create a purchase batch.
type CreateBatchRequest struct {
	Date     *Date                 `json:"date"`
	Supplier string                `json:"supplier"`
	Notes    string                `json:"notes"`
	Lines    []PurchaseLineRequest `json:"lines" binding:"dive"`
}

// ToEntity converts request to the batch header and its lines.
func (r *CreateBatchRequest) ToEntity() (*purchase_batch.Batch, []*purchase.Line) {
	batch := purchase_batch.NewBatch(dateOrZero(r.Date), r.Supplier)
	batch.Notes = r.Notes

	lines := linesToEntities(r.Lines)
	if lines == nil {
		lines = []*purchase.Line{}
	}
	return batch, lines
}

// UpdateBatchRequest represents a request to update a purchase batch.
// When Lines is omitted the stored lines are kept; when present, even as an
// empty list, they replace all stored lines.
type UpdateBatchRequest struct {
	Date     *Date                  `json:"date"`
	Supplier *string                `json:"supplier"`
	Notes    *string                `json:"notes"`
	Lines    *[]PurchaseLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ApplyTo applies header updates and returns the replacement lines, or nil
// when the stored lines are to be kept.
func (r *UpdateBatchRequest) ApplyTo(batch *purchase_batch.Batch) []*purchase.Line {
	if r.Date != nil {
		batch.Date = r.Date.Time()
	}
	if r.Supplier != nil {
		batch.Supplier = *r.Supplier
	}
	if r.Notes != nil {
		batch.Notes = *r.Notes
	}

	if r.Lines == nil {
		return nil
	}
	lines := linesToEntities(*r.Lines)
	if lines == nil {
		lines = []*purchase.Line{}
	}
	return lines
}

// --- Response DTOs ---

// PurchaseResponse represents a purchase line in API responses.
type PurchaseResponse struct {
	ID             string    `json:"id"`
	SequenceNumber int       `json:"sequenceNumber"`
	BatchID        *string   `json:"batchId"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Date           Date      `json:"date"`
	Quantity       int       `json:"quantity"`
	UnitCost       int       `json:"unitCost"`
	TotalCost      string    `json:"totalCost"`
	SaleValue      int       `json:"saleValue"`
	Supplier       string    `json:"supplier"`
	Notes          string    `json:"notes"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

// FromPurchase converts domain entity to response DTO.
func FromPurchase(l *purchase.Line) PurchaseResponse {
	return PurchaseResponse{
		ID:             l.ID.String(),
		SequenceNumber: l.SequenceNumber,
		BatchID:        optionalID(l.BatchID),
		ProductID:      l.ProductID.String(),
		ProductName:    l.ProductName,
		Date:           NewDate(l.Date),
		Quantity:       l.Quantity,
		UnitCost:       l.UnitCost,
		TotalCost:      Money(l.TotalCost()),
		SaleValue:      l.SaleValue,
		Supplier:       l.Supplier,
		Notes:          l.Notes,
		RegisteredAt:   l.RegisteredAt,
	}
}

// PurchaseSummaryResponse totals the purchases matched by a filter.
type PurchaseSummaryResponse struct {
	TotalSpent    string `json:"totalSpent"`
	PurchaseCount int64  `json:"purchaseCount"`
}

// FromPurchaseSummary converts the summary.
func FromPurchaseSummary(s purchase.Summary) PurchaseSummaryResponse {
	return PurchaseSummaryResponse{
		TotalSpent:    Money(s.TotalSpent),
		PurchaseCount: s.PurchaseCount,
	}
}

// BatchResponse represents a purchase batch with its lines.
type BatchResponse struct {
	ID             string             `json:"id"`
	SequenceNumber int                `json:"sequenceNumber"`
	Date           Date               `json:"date"`
	Supplier       string             `json:"supplier"`
	Notes          string             `json:"notes"`
	TotalCost      string             `json:"totalCost"`
	ProductCount   int                `json:"productCount"`
	Lines          []PurchaseResponse `json:"lines"`
	RegisteredAt   time.Time          `json:"registeredAt"`
}

// FromBatch converts domain entity to response DTO.
func FromBatch(b *purchase_batch.Batch) BatchResponse {
	lines := make([]PurchaseResponse, len(b.Lines))
	for i, line := range b.Lines {
		lines[i] = FromPurchase(line)
	}
	return BatchResponse{
		ID:             b.ID.String(),
		SequenceNumber: b.SequenceNumber,
		Date:           NewDate(b.Date),
		Supplier:       b.Supplier,
		Notes:          b.Notes,
		TotalCost:      Money(b.TotalCost),
		ProductCount:   b.ProductCount,
		Lines:          lines,
		RegisteredAt:   b.RegisteredAt,
	}
}

// BatchSummaryResponse totals the batches matched by a filter.
type BatchSummaryResponse struct {
	TotalSpent        string `json:"totalSpent"`
	BatchCount        int64  `json:"batchCount"`
	ProductsPurchased int64  `json:"productsPurchased"`
}

// FromBatchSummary converts the summary.
func FromBatchSummary(s purchase_batch.Summary) BatchSummaryResponse {
	return BatchSummaryResponse{
		TotalSpent:        Money(s.TotalSpent),
		BatchCount:        s.BatchCount,
		ProductsPurchased: s.ProductsPurchased,
	}
}
