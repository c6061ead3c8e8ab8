package services

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"agriledger/internal/core"
	"agriledger/internal/storage"
)

func newTestService(t *testing.T) *RecordService {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewRecordService(repo, nil)
}

func seedBuyer(t *testing.T, svc *RecordService) core.Buyer {
	t.Helper()
	b, err := svc.storage.CreateBuyer(context.Background(), core.Buyer{Name: "Kumar", Location: "Theni"})
	if err != nil {
		t.Fatalf("CreateBuyer() error = %v", err)
	}
	return b
}

func TestRecordService_CreateIncomeRecord(t *testing.T) {
	svc := newTestService(t)
	buyer := seedBuyer(t, svc)
	ctx := context.Background()

	saved, err := svc.CreateIncomeRecord(ctx, core.IncomeRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:    2500,
	})
	if err != nil {
		t.Fatalf("CreateIncomeRecord() error = %v", err)
	}
	if saved.ID == 0 {
		t.Error("saved record should have an id")
	}

	listed, err := svc.storage.ListIncomeRecordsByBuyer(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("ListIncomeRecordsByBuyer() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d records, want 1", len(listed))
	}
	if listed[0].Amount != 2500 {
		t.Errorf("Amount = %v, want 2500", listed[0].Amount)
	}
}

func TestRecordService_CreateIncomeRecordValidates(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateIncomeRecord(context.Background(), core.IncomeRecord{
		VisitDate: time.Now(),
		Amount:    100,
	})
	if err != core.ErrMissingBuyer {
		t.Errorf("error = %v, want ErrMissingBuyer", err)
	}
}

func TestRecordService_CreatePurchaseRecordDerivesAmount(t *testing.T) {
	svc := newTestService(t)
	buyer := seedBuyer(t, svc)
	ctx := context.Background()

	// Submitted prices are wrong on purpose; the service must recompute.
	saved, err := svc.CreatePurchaseRecord(ctx, core.PurchaseRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Items: []core.LineItem{
			{ProductID: 1, Quantity: 10, Rate: 5, Basis: core.BasisQuantity, Price: 999},
			{ProductID: 2, Weight: 3, Rate: 5, Basis: core.BasisWeight, Price: 999},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseRecord() error = %v", err)
	}

	if saved.Amount != 65 {
		t.Errorf("Amount = %v, want 65", saved.Amount)
	}
	if saved.Items[0].Price != 50 {
		t.Errorf("item 0 price = %v, want 50", saved.Items[0].Price)
	}
	if saved.Items[1].Price != 15 {
		t.Errorf("item 1 price = %v, want 15", saved.Items[1].Price)
	}

	got, err := svc.storage.GetPurchaseRecord(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetPurchaseRecord() error = %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("stored %d items, want 2", len(got.Items))
	}
	if got.Items[0].OrderIndex != 0 || got.Items[1].OrderIndex != 1 {
		t.Errorf("order indexes = %d, %d, want 0, 1", got.Items[0].OrderIndex, got.Items[1].OrderIndex)
	}
}

func TestRecordService_CreatePurchaseRecordClampsNaN(t *testing.T) {
	svc := newTestService(t)
	buyer := seedBuyer(t, svc)

	saved, err := svc.CreatePurchaseRecord(context.Background(), core.PurchaseRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Items: []core.LineItem{
			{ProductID: 1, Weight: math.NaN(), Rate: 5, Basis: core.BasisWeight},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseRecord() error = %v", err)
	}
	if saved.Amount != 0 {
		t.Errorf("Amount = %v, want 0 for NaN input", saved.Amount)
	}
	if len(saved.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(saved.Items))
	}
	if w := saved.Items[0].Weight; w != 0 {
		t.Errorf("stored weight = %v, want 0 for NaN input", w)
	}
}

func TestRecordService_CreatePurchaseRecordRequiresItems(t *testing.T) {
	svc := newTestService(t)
	buyer := seedBuyer(t, svc)

	_, err := svc.CreatePurchaseRecord(context.Background(), core.PurchaseRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Now(),
	})
	if err != core.ErrEmptyLineItems {
		t.Errorf("error = %v, want ErrEmptyLineItems", err)
	}
}

func TestRecordService_CreateCutoffRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	land, err := svc.storage.CreateLandAvailable(ctx, core.LandAvailable{
		Name:    "East grove",
		Variant: "Nendran",
		Trees:   120,
	})
	if err != nil {
		t.Fatalf("CreateLandAvailable() error = %v", err)
	}

	saved, err := svc.CreateCutoffRecord(ctx, core.CutoffRecord{
		LandID:  land.ID,
		Name:    land.Name,
		Variant: land.Variant,
		Trees:   40,
		Ship:    "lorry 2",
		Weight:  800,
		Amount:  16000,
	})
	if err != nil {
		t.Fatalf("CreateCutoffRecord() error = %v", err)
	}
	if saved.CreatedDate.IsZero() {
		t.Error("saved cutoff record should carry a created date")
	}
}

func TestRecordService_CloseNilComponents(t *testing.T) {
	svc := &RecordService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() with nil components error = %v", err)
	}
}
