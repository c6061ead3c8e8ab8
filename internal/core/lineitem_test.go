package core

import (
	"errors"
	"math"
	"testing"
)

func TestRecomputePure(t *testing.T) {
	item := LineItem{Quantity: 4, Weight: 3, Rate: 5, Basis: BasisWeight}

	first := Recompute(item)
	second := Recompute(item)
	if first != second {
		t.Fatalf("recompute is not deterministic: %+v vs %+v", first, second)
	}
	if item.Price != 0 {
		t.Fatalf("recompute mutated its input: price=%v", item.Price)
	}
	if first.Price != 15 {
		t.Fatalf("weight basis: got price %v, want 15", first.Price)
	}
}

func TestRecomputeBasis(t *testing.T) {
	cases := []struct {
		name string
		item LineItem
		want float64
	}{
		{"by weight", LineItem{Quantity: 4, Weight: 3, Rate: 5, Basis: BasisWeight}, 15},
		{"by quantity", LineItem{Quantity: 4, Weight: 3, Rate: 5, Basis: BasisQuantity}, 20},
		{"zero rate", LineItem{Quantity: 4, Weight: 3, Basis: BasisQuantity}, 0},
		{"nan rate clamps", LineItem{Weight: 3, Rate: math.NaN(), Basis: BasisWeight}, 0},
		{"inf clamps", LineItem{Weight: math.Inf(1), Rate: 2, Basis: BasisWeight}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Recompute(tc.item)
			if got.Price != tc.want {
				t.Errorf("got price %v, want %v", got.Price, tc.want)
			}
		})
	}
}

func TestRecomputeClampsFields(t *testing.T) {
	got := Recompute(LineItem{Quantity: math.NaN(), Weight: math.Inf(1), Rate: math.NaN(), Basis: BasisWeight})
	if got.Quantity != 0 || got.Weight != 0 || got.Rate != 0 {
		t.Errorf("got quantity=%v weight=%v rate=%v, want all zero", got.Quantity, got.Weight, got.Rate)
	}
	if got.Price != 0 {
		t.Errorf("got price %v, want 0", got.Price)
	}
}

func TestSetFieldRecomputes(t *testing.T) {
	items := []LineItem{{Weight: 3, Basis: BasisWeight}}

	out, err := SetField(items, 0, FieldRate, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Price != 15 {
		t.Fatalf("got price %v, want 15", out[0].Price)
	}
	if items[0].Rate != 0 || items[0].Price != 0 {
		t.Fatalf("input slice was mutated: %+v", items[0])
	}
}

func TestSetFieldSwitchesBasis(t *testing.T) {
	items := []LineItem{{Quantity: 10, Weight: 3, Rate: 2, Basis: BasisWeight}}

	out, err := SetField(items, 0, FieldBasis, "quantity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Basis != BasisQuantity {
		t.Fatalf("basis not switched: %v", out[0].Basis)
	}
	if out[0].Price != 20 {
		t.Fatalf("price not rederived on basis switch: got %v, want 20", out[0].Price)
	}
}

func TestSetFieldOutOfRange(t *testing.T) {
	items := []LineItem{{Weight: 3, Rate: 5, Basis: BasisWeight, Price: 15}}

	for _, idx := range []int{-1, 1, 99} {
		out, err := SetField(items, idx, FieldRate, 7.0)
		if !errors.Is(err, ErrItemIndex) {
			t.Fatalf("index %d: expected ErrItemIndex, got %v", idx, err)
		}
		if len(out) != 1 || out[0].Rate != 5 || out[0].Price != 15 {
			t.Fatalf("index %d: list changed on rejected update: %+v", idx, out)
		}
	}
}

func TestSetFieldOtherItemsUntouched(t *testing.T) {
	items := []LineItem{
		{Weight: 1, Rate: 1, Basis: BasisWeight, Price: 1, OrderIndex: 0},
		{Weight: 2, Rate: 2, Basis: BasisWeight, Price: 4, OrderIndex: 1},
	}
	out, err := SetField(items, 1, FieldWeight, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != items[0] {
		t.Fatalf("sibling item changed: %+v", out[0])
	}
	if out[1].Weight != 5 || out[1].Price != 10 || out[1].OrderIndex != 1 {
		t.Fatalf("target item wrong: %+v", out[1])
	}
}

func TestAppendAssignsOrderIndex(t *testing.T) {
	items := []LineItem{NewLineItem()}

	out := Append(items)
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	got := out[1]
	if got.OrderIndex != 1 {
		t.Fatalf("got order index %d, want 1", got.OrderIndex)
	}
	if got.Basis != BasisWeight || got.Quantity != 0 || got.Weight != 0 || got.Rate != 0 || got.Price != 0 {
		t.Fatalf("appended item is not the default row: %+v", got)
	}
}

func TestRemoveFloorsAtOne(t *testing.T) {
	single := []LineItem{NewLineItem()}
	if out := Remove(single, 0); len(out) != 1 {
		t.Fatalf("single-item list shrank to %d", len(out))
	}

	items := []LineItem{{Rate: 1}, {Rate: 2}, {Rate: 3}}
	out := Remove(items, 1)
	if len(out) != 2 || out[0].Rate != 1 || out[1].Rate != 3 {
		t.Fatalf("remove(1) got %+v", out)
	}
	if out := Remove(items, 5); len(out) != 3 {
		t.Fatalf("out-of-range remove changed the list: %d items", len(out))
	}
}

func TestReindex(t *testing.T) {
	items := []LineItem{{OrderIndex: 7}, {OrderIndex: 0}, {OrderIndex: 3}}

	out := Reindex(items)
	for i, it := range out {
		if it.OrderIndex != i {
			t.Fatalf("item %d has order index %d", i, it.OrderIndex)
		}
	}
	// Idempotent.
	again := Reindex(out)
	for i, it := range again {
		if it.OrderIndex != i {
			t.Fatalf("reindex not idempotent at %d: %d", i, it.OrderIndex)
		}
	}
}

func TestResolve(t *testing.T) {
	catalog := map[int64]string{1: "Nendran", 2: "Poovan"}
	items := []LineItem{
		{ProductID: 2, Weight: 3, Rate: 5, Basis: BasisWeight, OrderIndex: 9},
		{ProductID: 99, Quantity: 2, Rate: 10, Basis: BasisQuantity},
	}

	out := Resolve(items, catalog)
	if out[0].ProductName != "Poovan" || out[0].Price != 15 || out[0].OrderIndex != 0 {
		t.Fatalf("first item: %+v", out[0])
	}
	if out[1].ProductName != "" {
		t.Fatalf("unknown product should resolve to empty name, got %q", out[1].ProductName)
	}
	if out[1].Price != 20 || out[1].OrderIndex != 1 {
		t.Fatalf("second item: %+v", out[1])
	}
}
