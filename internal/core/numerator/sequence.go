// Package numerator derives display sequence numbers for dated records.
//
// All records of one kind that share a calendar date share one ordinal.
// The ordinal of a date is its 1-based position among the distinct dates
// stored for that kind; a date that is not stored yet gets count+1.
package numerator

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"stockbook/internal/core/id"
)

// Policy selects the ordering of distinct dates.
type Policy int

const (
	// PolicyAscending numbers dates oldest first.
	PolicyAscending Policy = iota
	// PolicyDescending numbers dates newest first.
	PolicyDescending
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == PolicyDescending {
		return "descending"
	}
	return "ascending"
}

// ParsePolicy accepts "ascending"/"asc" and "descending"/"desc".
// An empty string selects PolicyAscending.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return PolicyAscending, nil
	case "desc", "descending":
		return PolicyDescending, nil
	default:
		return PolicyAscending, fmt.Errorf("unknown numbering policy %q", s)
	}
}

// Dated is a record that has an identity and a business date.
type Dated interface {
	GetID() id.ID
	GetDate() time.Time
}

// Sequenced is a Dated record that can hold its derived ordinal.
type Sequenced interface {
	Dated
	SetSequenceNumber(n int)
}

type day struct {
	y int
	m time.Month
	d int
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day{y, m, d}
}

// Index maps calendar dates to ordinals for one snapshot of stored dates.
type Index struct {
	policy Policy
	pos    map[day]int
}

// NewIndex builds an Index from stored dates. Duplicates and clock parts
// are ignored, input order does not matter.
func NewIndex(dates []time.Time, policy Policy) *Index {
	days := make([]day, 0, len(dates))
	seen := make(map[day]struct{}, len(dates))
	for _, t := range dates {
		k := dayOf(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		days = append(days, k)
	}

	slices.SortFunc(days, func(a, b day) int {
		c := compareDay(a, b)
		if policy == PolicyDescending {
			return -c
		}
		return c
	})

	pos := make(map[day]int, len(days))
	for i, k := range days {
		pos[k] = i + 1
	}
	return &Index{policy: policy, pos: pos}
}

// Len returns the number of distinct dates in the index.
func (x *Index) Len() int {
	return len(x.pos)
}

// Ordinal returns the sequence number for target: its position when
// present, Len()+1 otherwise.
func (x *Index) Ordinal(target time.Time) int {
	if n, ok := x.pos[dayOf(target)]; ok {
		return n
	}
	return len(x.pos) + 1
}

// Ordinal computes the sequence number of target among dates.
func Ordinal(dates []time.Time, target time.Time, policy Policy) int {
	return NewIndex(dates, policy).Ordinal(target)
}

// Assign sets the sequence number of every record from the index.
func Assign[T Sequenced](x *Index, records []T) {
	for _, r := range records {
		r.SetSequenceNumber(x.Ordinal(r.GetDate()))
	}
}

// Dates extracts the business dates of records.
func Dates[T Dated](records []T) []time.Time {
	out := make([]time.Time, len(records))
	for i, r := range records {
		out[i] = r.GetDate()
	}
	return out
}

func compareDay(a, b day) int {
	switch {
	case a.y != b.y:
		return cmpInt(a.y, b.y)
	case a.m != b.m:
		return cmpInt(int(a.m), int(b.m))
	default:
		return cmpInt(a.d, b.d)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
