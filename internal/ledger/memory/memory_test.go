package memory

import (
	"context"
	"testing"
	"time"

	"agriledger/internal/ledger"
)

func TestStore_Append(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, ledger.Row{
		Kind:   "income",
		ID:     1,
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Party:  "Kumar",
		Amount: 1500,
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("Append() ref = %q, want %q", ref, "mem:1")
	}

	rows := s.Rows()
	if len(rows) != 1 {
		t.Fatalf("Rows() len = %d, want 1", len(rows))
	}
	if rows[0].Party != "Kumar" {
		t.Errorf("stored Party = %q, want %q", rows[0].Party, "Kumar")
	}
}

func TestStore_AppendRejectsMissingKind(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), ledger.Row{ID: 1}); err == nil {
		t.Error("Append() should fail without a kind")
	}
	if len(s.Rows()) != 0 {
		t.Error("failed append should not store a row")
	}
}

func TestStore_RowsReturnsCopy(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), ledger.Row{Kind: "cutoff", ID: 7}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rows := s.Rows()
	rows[0].Kind = "mutated"

	if s.Rows()[0].Kind != "cutoff" {
		t.Error("Rows() should return a copy, not the backing slice")
	}
}
