// Package audit defines the change trail written alongside every mutation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"stockbook/internal/core/id"
)

// Action is the kind of recorded change.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entity types used in the trail.
const (
	EntityProduct       = "product"
	EntityPurchaseBatch = "purchase_batch"
	EntityPurchaseLine  = "purchase_line"
	EntitySale          = "sale"
)

// Recorder appends entries to the change trail. Implementations write with
// the transaction found in ctx, so an entry commits or rolls back together
// with the change it describes.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes any) error
}

// Nop discards every entry.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, string, id.ID, Action, any) error { return nil }

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}

// Entry is one stored change.
type Entry struct {
	ID         id.ID           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   id.ID           `json:"entityId"`
	Action     Action          `json:"action"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// HistoryQuery selects entries, newest first. Empty fields match everything.
type HistoryQuery struct {
	EntityType string
	EntityID   *id.ID
	Limit      int
}

// Reader reads the change trail back.
type Reader interface {
	History(ctx context.Context, q HistoryQuery) ([]Entry, error)
}

// IsEntityType reports whether t names an audited entity.
func IsEntityType(t string) bool {
	switch t {
	case EntityProduct, EntityPurchaseBatch, EntityPurchaseLine, EntitySale:
		return true
	}
	return false
}
