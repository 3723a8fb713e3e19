// Package sale provides the sale document.
package sale

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Channel is where a sale was made.
type Channel string

const (
	ChannelLocal     Channel = "local"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelMessenger Channel = "messenger"
	ChannelDelivery  Channel = "delivery"
	ChannelInstagram Channel = "instagram"
	ChannelPhone     Channel = "phone"
	ChannelOther     Channel = "other"
)

// Channels lists every accepted channel.
var Channels = []Channel{
	ChannelLocal, ChannelWhatsApp, ChannelMessenger, ChannelDelivery,
	ChannelInstagram, ChannelPhone, ChannelOther,
}

// IsValid reports whether c is a known channel.
func (c Channel) IsValid() bool {
	for _, known := range Channels {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMethod is how a sale was (or will be) paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentInvoice  PaymentMethod = "invoice"
	PaymentCard     PaymentMethod = "card"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCredit   PaymentMethod = "credit"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentTransfer, PaymentInvoice, PaymentCard, PaymentDebit, PaymentCredit,
}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

const maxCustomerLength = 200

// Sale represents a product sold to a customer.
type Sale struct {
	entity.Document

	ProductID     id.ID         `db:"product_id" json:"productId"`
	Channel       Channel       `db:"channel" json:"channel"`
	Customer      string        `db:"customer" json:"customer"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Quantity      int           `db:"quantity" json:"quantity"`
	UnitPrice     int           `db:"unit_price" json:"unitPrice"`
	Paid          bool          `db:"paid" json:"paid"`
	Notes         string        `db:"notes" json:"notes"`

	// ProductName is filled on read.
	ProductName string `db:"product_name" json:"productName"`
}

// NewSale creates a sale with generated ID and defaults applied.
func NewSale(date time.Time, productID id.ID) *Sale {
	return &Sale{
		Document:      entity.NewDocument(date),
		ProductID:     productID,
		Channel:       ChannelLocal,
		PaymentMethod: PaymentCash,
		Paid:          true,
	}
}

// Total returns quantity × unitPrice.
func (s *Sale) Total() types.Money {
	return types.LineTotal(s.Quantity, s.UnitPrice)
}

var _ entity.Validatable = (*Sale)(nil)

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(s.ProductID) {
		return apperror.NewFieldValidation("productId", "productId is required")
	}
	if s.Channel == "" {
		s.Channel = ChannelLocal
	}
	if !s.Channel.IsValid() {
		return apperror.NewFieldValidation("channel", "unknown channel").
			WithDetail("value", string(s.Channel))
	}
	if s.PaymentMethod == "" {
		s.PaymentMethod = PaymentCash
	}
	if !s.PaymentMethod.IsValid() {
		return apperror.NewFieldValidation("paymentMethod", "unknown payment method").
			WithDetail("value", string(s.PaymentMethod))
	}

	s.Customer = strings.TrimSpace(s.Customer)
	if s.Customer == "" {
		return apperror.NewFieldValidation("customer", "customer is required")
	}
	if len([]rune(s.Customer)) > maxCustomerLength {
		return apperror.NewFieldValidation("customer", "customer is too long").
			WithDetail("max", maxCustomerLength)
	}

	if s.Quantity < 1 {
		return apperror.NewFieldValidation("quantity", "quantity must be at least 1").
			WithDetail("value", s.Quantity)
	}
	if s.UnitPrice < 1 {
		return apperror.NewFieldValidation("unitPrice", "unitPrice must be at least 1").
			WithDetail("value", s.UnitPrice)
	}
	return nil
}
