package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"agriledger/internal/amqp"
	"agriledger/internal/core"
	"agriledger/internal/ledger"
	"agriledger/internal/storage"
)

// LedgerWorker mirrors newly created records into the external ledger
// spreadsheet. It consumes record created messages, loads the full row from
// SQLite and appends one flattened line per record.
type LedgerWorker struct {
	storage  *storage.Repository
	appender ledger.Appender
}

func NewLedgerWorker(storage *storage.Repository, appender ledger.Appender) *LedgerWorker {
	return &LedgerWorker{
		storage:  storage,
		appender: appender,
	}
}

// HandleRecordCreated processes a single record created message. Returning
// an error requeues the message.
func (w *LedgerWorker) HandleRecordCreated(ctx context.Context, msg *amqp.RecordCreatedMessage) error {
	slog.InfoContext(ctx, "Processing record created message",
		"kind", msg.Kind,
		"id", msg.ID)

	row, err := w.buildRow(ctx, msg.Kind, msg.ID)
	if err != nil {
		return fmt.Errorf("build ledger row: %w", err)
	}

	ref, err := w.appender.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}

	slog.InfoContext(ctx, "Appended ledger row",
		"kind", msg.Kind,
		"id", msg.ID,
		"ledger_ref", ref)

	return nil
}

func (w *LedgerWorker) buildRow(ctx context.Context, kind string, id int64) (ledger.Row, error) {
	switch kind {
	case amqp.KindIncome:
		rec, err := w.storage.GetIncomeRecord(ctx, id)
		if err != nil {
			return ledger.Row{}, err
		}
		return ledger.Row{
			Kind:   kind,
			ID:     rec.ID,
			Date:   rec.VisitDate,
			Party:  w.buyerName(ctx, rec.BuyerID),
			Detail: "advance received",
			Amount: rec.Amount,
		}, nil

	case amqp.KindPurchase:
		rec, err := w.storage.GetPurchaseRecord(ctx, id)
		if err != nil {
			return ledger.Row{}, err
		}
		return ledger.Row{
			Kind:   kind,
			ID:     rec.ID,
			Date:   rec.VisitDate,
			Party:  w.buyerName(ctx, rec.BuyerID),
			Detail: w.purchaseDetail(ctx, rec),
			Amount: rec.Amount,
		}, nil

	case amqp.KindOwner:
		rec, err := w.storage.GetOwnerRecord(ctx, id)
		if err != nil {
			return ledger.Row{}, err
		}
		party := ""
		if owner, err := w.storage.GetLandOwner(ctx, rec.LandOwnerID); err == nil {
			party = owner.Name
		}
		return ledger.Row{
			Kind:   kind,
			ID:     rec.ID,
			Date:   rec.VisitDate,
			Party:  party,
			Detail: rec.Reason,
			Amount: rec.Amount,
		}, nil

	case amqp.KindCutoff:
		rec, err := w.storage.GetCutoffRecord(ctx, id)
		if err != nil {
			return ledger.Row{}, err
		}
		detail := rec.Variant
		if rec.Ship != "" {
			detail = fmt.Sprintf("%s via %s", detail, rec.Ship)
		}
		return ledger.Row{
			Kind:   kind,
			ID:     rec.ID,
			Date:   rec.CreatedDate,
			Party:  rec.Name,
			Detail: detail,
			Amount: rec.Amount,
		}, nil
	}

	return ledger.Row{}, fmt.Errorf("unknown record kind %q", kind)
}

func (w *LedgerWorker) buyerName(ctx context.Context, buyerID int64) string {
	buyer, err := w.storage.GetBuyer(ctx, buyerID)
	if err != nil {
		slog.WarnContext(ctx, "Buyer lookup failed for ledger row",
			"buyer_id", buyerID, "error", err)
		return ""
	}
	return buyer.Name
}

// purchaseDetail summarizes line items as "Nendran x40, Poovan 120kg".
func (w *LedgerWorker) purchaseDetail(ctx context.Context, rec core.PurchaseRecord) string {
	catalog, err := w.storage.ProductCatalog(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Product catalog lookup failed", "error", err)
		catalog = nil
	}

	parts := make([]string, 0, len(rec.Items))
	for _, item := range rec.Items {
		name := catalog[item.ProductID]
		if name == "" {
			name = fmt.Sprintf("product %d", item.ProductID)
		}
		if item.Basis == core.BasisQuantity {
			parts = append(parts, fmt.Sprintf("%s x%g", name, item.Quantity))
		} else {
			parts = append(parts, fmt.Sprintf("%s %gkg", name, item.Weight))
		}
	}
	return strings.Join(parts, ", ")
}
