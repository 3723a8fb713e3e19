package numerator

import (
	"context"
	"time"
)

// Kind identifies a family of numbered records. Each kind is numbered
// independently of the others.
type Kind string

const (
	KindPurchaseLine  Kind = "purchase_line"
	KindPurchaseBatch Kind = "purchase_batch"
	KindSale          Kind = "sale"
)

// Generator loads the current date snapshot of a kind.
// Implementations live in infrastructure layer.
type Generator interface {
	// Index returns an Index over all distinct dates stored for kind.
	Index(ctx context.Context, kind Kind) (*Index, error)

	// Number returns the sequence number date has (or would get) for kind.
	Number(ctx context.Context, kind Kind, date time.Time) (int, error)
}
