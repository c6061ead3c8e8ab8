package core

import (
	"errors"
	"math"
)

var ErrItemIndex = errors.New("line item index out of range")

// LineItem is one product row of a purchase record. Price is derived from
// quantity or weight times rate and is never set directly.
type LineItem struct {
	ProductID  int64     `json:"productId"`
	Quantity   float64   `json:"quantity"`
	Weight     float64   `json:"weight"`
	Rate       float64   `json:"rate"`
	Basis      CalcBasis `json:"calcBy"`
	Price      float64   `json:"price"`
	OrderIndex int       `json:"orderIndex"`
}

// Field names accepted by SetField.
type ItemField string

const (
	FieldProduct  ItemField = "productId"
	FieldQuantity ItemField = "quantity"
	FieldWeight   ItemField = "weight"
	FieldRate     ItemField = "rate"
	FieldBasis    ItemField = "calcBy"
)

// SubmittedItem is the serialized form of a line item, with the product
// name resolved from the catalog for display on the stored record.
type SubmittedItem struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	Weight      float64 `json:"weight"`
	Rate        float64 `json:"rate"`
	Price       float64 `json:"price"`
	OrderIndex  int     `json:"orderIndex"`
}

// NewLineItem returns the default row added by the record form: all zeros,
// priced by weight.
func NewLineItem() LineItem {
	return LineItem{Basis: BasisWeight}
}

// Recompute returns a copy of the item with its price rederived. Any
// non-finite numeric field (NaN or Inf from bad input) clamps to zero,
// so the stored row never carries the bad value either.
func Recompute(item LineItem) LineItem {
	item.Quantity = clampFinite(item.Quantity)
	item.Weight = clampFinite(item.Weight)
	item.Rate = clampFinite(item.Rate)

	driver := item.Weight
	if item.Basis == BasisQuantity {
		driver = item.Quantity
	}
	item.Price = driver * item.Rate
	return item
}

func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SetField returns a new slice with one field of the item at index changed
// and that item's price recomputed. The input is returned unchanged, along
// with ErrItemIndex, when index is out of bounds. A value of the wrong type
// for the field is ignored, leaving only the recompute applied.
func SetField(items []LineItem, index int, field ItemField, value any) ([]LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, ErrItemIndex
	}
	out := make([]LineItem, len(items))
	copy(out, items)

	it := out[index]
	switch field {
	case FieldProduct:
		if v, ok := toInt64(value); ok {
			it.ProductID = v
		}
	case FieldQuantity:
		if v, ok := toFloat(value); ok {
			it.Quantity = v
		}
	case FieldWeight:
		if v, ok := toFloat(value); ok {
			it.Weight = v
		}
	case FieldRate:
		if v, ok := toFloat(value); ok {
			it.Rate = v
		}
	case FieldBasis:
		if v, ok := value.(CalcBasis); ok && v.Validate() == nil {
			it.Basis = v
		} else if s, ok := value.(string); ok && CalcBasis(s).Validate() == nil {
			it.Basis = CalcBasis(s)
		}
	}
	out[index] = Recompute(it)
	return out, nil
}

// Append returns a new slice with a default line item added at the end,
// its order index equal to its position.
func Append(items []LineItem) []LineItem {
	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	next := NewLineItem()
	next.OrderIndex = len(out)
	return append(out, next)
}

// Remove returns a new slice without the item at index. A single-item list
// is returned as is: every record keeps at least one row. Out-of-range
// indexes are also a no-op rather than an error, matching the form's
// disabled remove button.
func Remove(items []LineItem, index int) []LineItem {
	if len(items) <= 1 || index < 0 || index >= len(items) {
		return items
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out
}

// Reindex rewrites each item's order index to its position, overriding any
// stale stored index. Applied whenever items are serialized for submission.
func Reindex(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].OrderIndex = i
	}
	return out
}

// Resolve recomputes, reindexes and serializes items for submission,
// resolving display names through the catalog. Unknown products get an
// empty name.
func Resolve(items []LineItem, catalog map[int64]string) []SubmittedItem {
	out := make([]SubmittedItem, len(items))
	for i, it := range items {
		it = Recompute(it)
		out[i] = SubmittedItem{
			ProductName: catalog[it.ProductID],
			Quantity:    it.Quantity,
			Weight:      it.Weight,
			Rate:        it.Rate,
			Price:       it.Price,
			OrderIndex:  i,
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
