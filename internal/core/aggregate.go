package core

import (
	"errors"
	"time"
)

var (
	ErrWindowMissingBound = errors.New("date window needs both from and to")
	ErrWindowInverted     = errors.New("date window from is after to")
)

// Dated is any record carrying a single aggregation date. A zero time means
// the record has no usable date and is excluded from counting and filtering.
type Dated interface {
	RecordDate() time.Time
}

// Counts holds fixed-window record counts relative to a reference instant.
// The three windows are independent, not cumulative subsets.
type Counts struct {
	Today int `json:"today"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DateWindow is an inclusive calendar range. Both bounds are required.
type DateWindow struct {
	From time.Time
	To   time.Time
}

func (w DateWindow) Validate() error {
	if w.From.IsZero() || w.To.IsZero() {
		return ErrWindowMissingBound
	}
	if w.From.After(w.To) {
		return ErrWindowInverted
	}
	return nil
}

// CountsFor counts records falling on the same calendar day, month and year
// as now. Comparison is by calendar component, so a record dated midnight
// matches any instant within that day. Records without a date never match.
func CountsFor[T Dated](records []T, now time.Time) Counts {
	var c Counts
	for _, r := range records {
		d := r.RecordDate()
		if d.IsZero() {
			continue
		}
		if d.Year() == now.Year() {
			c.Year++
			if d.Month() == now.Month() {
				c.Month++
				if d.Day() == now.Day() {
					c.Today++
				}
			}
		}
	}
	return c
}

// FilterByRange returns the records whose date lies inside the window,
// bounds inclusive. The input is never mutated. An invalid window yields
// a validation error and no result.
func FilterByRange[T Dated](records []T, w DateWindow) ([]T, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		d := r.RecordDate()
		if d.IsZero() {
			continue
		}
		if !d.Before(w.From) && !d.After(w.To) {
			out = append(out, r)
		}
	}
	return out, nil
}

// RecordView tracks the currently displayed subset of a record collection.
// A failed Apply leaves the previous subset in place, matching the list
// screens where a bad filter shows an error without clearing the table.
type RecordView[T Dated] struct {
	all      []T
	filtered []T
}

func NewRecordView[T Dated](records []T) *RecordView[T] {
	return &RecordView[T]{all: records, filtered: records}
}

// Apply filters the full collection by the window. On validation failure
// the previous filtered subset is retained and the error is returned.
func (v *RecordView[T]) Apply(w DateWindow) error {
	out, err := FilterByRange(v.all, w)
	if err != nil {
		return err
	}
	v.filtered = out
	return nil
}

// Reset restores the unfiltered collection.
func (v *RecordView[T]) Reset() {
	v.filtered = v.all
}

// Records returns the current subset. Callers own display ordering.
func (v *RecordView[T]) Records() []T {
	return v.filtered
}
