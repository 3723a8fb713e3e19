// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// --- Dates ---

// Date is a calendar date rendered as YYYY-MM-DD. RFC3339 input is
// accepted and truncated to its date part.
type Date time.Time

// NewDate wraps t.
func NewDate(t time.Time) Date {
	return Date(types.TruncateDate(t))
}

// Time returns the wrapped value.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(types.FormatDate(time.Time(d)))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	t, err := types.ParseDate(s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// dateOrZero unwraps an optional date. A zero time fails domain validation
// as a missing date.
func dateOrZero(d *Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time()
}

// --- Money ---

// Money renders an amount with two fractional digits, e.g. "250.00".
func Money(m types.Money) string {
	return types.FormatMoney(m)
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse maps every item of result with fn.
func NewListResponse[E, T any](result domain.ListResult[E], fn func(E) T) ListResponse[T] {
	items := make([]T, len(result.Items))
	for i, item := range result.Items {
		items[i] = fn(item)
	}
	return ListResponse[T]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}

// --- IDs ---

// optionalID renders a nullable id.
func optionalID(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error ErrorResponse `json:"error"`
}
