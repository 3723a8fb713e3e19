package dto

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents/sale"
)

// --- Request DTOs ---

// SaleRequest is the body of sale create and update requests. An omitted
// channel defaults to local, an omitted payment method to cash and an
// omitted paid flag to true.
type SaleRequest struct {
	Date          *Date  `json:"date"`
	ProductID     string `json:"productId" binding:"required,uuid"`
	Channel       string `json:"channel" binding:"omitempty,channel"`
	Customer      string `json:"customer"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,payment_method"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int    `json:"unitPrice"`
	Paid          *bool  `json:"paid"`
	Notes         string `json:"notes"`
}

// ToEntity converts request to domain entity.
func (r *SaleRequest) ToEntity() *sale.Sale {
	productID, _ := id.Parse(r.ProductID)
	s := sale.NewSale(dateOrZero(r.Date), productID)
	r.applyFields(s)
	return s
}

// ApplyTo overwrites an existing sale, keeping its registration time.
func (r *SaleRequest) ApplyTo(s *sale.Sale) {
	s.ProductID, _ = id.Parse(r.ProductID)
	if r.Date != nil {
		s.Date = r.Date.Time()
	}
	s.Channel = sale.ChannelLocal
	s.PaymentMethod = sale.PaymentCash
	s.Paid = true
	r.applyFields(s)
}

func (r *SaleRequest) applyFields(s *sale.Sale) {
	if r.Channel != "" {
		s.Channel = sale.Channel(r.Channel)
	}
	if r.PaymentMethod != "" {
		s.PaymentMethod = sale.PaymentMethod(r.PaymentMethod)
	}
	if r.Paid != nil {
		s.Paid = *r.Paid
	}
	s.Customer = r.Customer
	s.Quantity = r.Quantity
	s.UnitPrice = r.UnitPrice
	s.Notes = r.Notes
}

// --- Response DTOs ---

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID             string    `json:"id"`
	SequenceNumber int       `json:"sequenceNumber"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Date           Date      `json:"date"`
	Channel        string    `json:"channel"`
	Customer       string    `json:"customer"`
	PaymentMethod  string    `json:"paymentMethod"`
	Quantity       int       `json:"quantity"`
	UnitPrice      int       `json:"unitPrice"`
	Total          string    `json:"total"`
	Paid           bool      `json:"paid"`
	Notes          string    `json:"notes"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

// FromSale converts domain entity to response DTO.
func FromSale(s *sale.Sale) SaleResponse {
	return SaleResponse{
		ID:             s.ID.String(),
		SequenceNumber: s.SequenceNumber,
		ProductID:      s.ProductID.String(),
		ProductName:    s.ProductName,
		Date:           NewDate(s.Date),
		Channel:        string(s.Channel),
		Customer:       s.Customer,
		PaymentMethod:  string(s.PaymentMethod),
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		Total:          Money(s.Total()),
		Paid:           s.Paid,
		Notes:          s.Notes,
		RegisteredAt:   s.RegisteredAt,
	}
}

// SaleSummaryResponse totals the sales matched by a filter.
type SaleSummaryResponse struct {
	TotalIncome   string `json:"totalIncome"`
	PaidIncome    string `json:"paidIncome"`
	PendingIncome string `json:"pendingIncome"`
	SaleCount     int64  `json:"saleCount"`
}

// FromSaleSummary converts the summary.
func FromSaleSummary(s sale.Summary) SaleSummaryResponse {
	return SaleSummaryResponse{
		TotalIncome:   Money(s.TotalIncome),
		PaidIncome:    Money(s.PaidIncome),
		PendingIncome: Money(s.PendingIncome),
		SaleCount:     s.SaleCount,
	}
}
