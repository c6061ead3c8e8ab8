package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"agriledger/internal/amqp"
	"agriledger/internal/core"
	"agriledger/internal/ledger/memory"
	"agriledger/internal/storage"
)

func newTestWorker(t *testing.T) (*LedgerWorker, *storage.Repository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store := memory.New()
	return NewLedgerWorker(repo, store), repo, store
}

func TestLedgerWorker_HandleIncomeRecord(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	buyer, err := repo.CreateBuyer(ctx, core.Buyer{Name: "Kumar", Location: "Theni"})
	if err != nil {
		t.Fatalf("CreateBuyer() error = %v", err)
	}
	rec, err := repo.CreateIncomeRecord(ctx, core.IncomeRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:    2500,
	})
	if err != nil {
		t.Fatalf("CreateIncomeRecord() error = %v", err)
	}

	msg := amqp.NewRecordCreatedMessage(amqp.KindIncome, rec.ID)
	if err := w.HandleRecordCreated(ctx, msg); err != nil {
		t.Fatalf("HandleRecordCreated() error = %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("appended %d rows, want 1", len(rows))
	}
	if rows[0].Party != "Kumar" {
		t.Errorf("Party = %q, want %q", rows[0].Party, "Kumar")
	}
	if rows[0].Amount != 2500 {
		t.Errorf("Amount = %v, want 2500", rows[0].Amount)
	}
}

func TestLedgerWorker_HandlePurchaseRecordDetail(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	buyer, err := repo.CreateBuyer(ctx, core.Buyer{Name: "Selvam"})
	if err != nil {
		t.Fatalf("CreateBuyer() error = %v", err)
	}

	catalog, err := repo.ProductCatalog(ctx)
	if err != nil {
		t.Fatalf("ProductCatalog() error = %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("product catalog should be seeded by migrations")
	}

	rec, err := repo.CreatePurchaseRecord(ctx, core.PurchaseRecord{
		BuyerID:   buyer.ID,
		VisitDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Amount:    50,
		Items: []core.LineItem{
			{ProductID: 1, Quantity: 10, Rate: 5, Basis: core.BasisQuantity, Price: 50},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseRecord() error = %v", err)
	}

	msg := amqp.NewRecordCreatedMessage(amqp.KindPurchase, rec.ID)
	if err := w.HandleRecordCreated(ctx, msg); err != nil {
		t.Fatalf("HandleRecordCreated() error = %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("appended %d rows, want 1", len(rows))
	}
	want := catalog[1] + " x10"
	if rows[0].Detail != want {
		t.Errorf("Detail = %q, want %q", rows[0].Detail, want)
	}
}

func TestLedgerWorker_UnknownKind(t *testing.T) {
	w, _, store := newTestWorker(t)

	msg := amqp.NewRecordCreatedMessage("mystery", 1)
	if err := w.HandleRecordCreated(context.Background(), msg); err == nil {
		t.Error("HandleRecordCreated() should fail for unknown kinds")
	}
	if len(store.Rows()) != 0 {
		t.Error("no row should be appended for unknown kinds")
	}
}

func TestLedgerWorker_MissingRecord(t *testing.T) {
	w, _, _ := newTestWorker(t)

	msg := amqp.NewRecordCreatedMessage(amqp.KindIncome, 999)
	if err := w.HandleRecordCreated(context.Background(), msg); err == nil {
		t.Error("HandleRecordCreated() should fail when the record does not exist")
	}
}
