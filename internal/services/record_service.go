package services

import (
	"context"
	"fmt"
	"log/slog"

	"agriledger/internal/amqp"
	"agriledger/internal/core"
	"agriledger/internal/storage"
)

// RecordService orchestrates record writes across SQLite and AMQP. The
// database write is authoritative; the publish only feeds the spreadsheet
// mirror and never fails a request.
type RecordService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.Repository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

func (s *RecordService) CreateIncomeRecord(ctx context.Context, rec core.IncomeRecord) (core.IncomeRecord, error) {
	if err := rec.Validate(); err != nil {
		return core.IncomeRecord{}, err
	}

	saved, err := s.storage.CreateIncomeRecord(ctx, rec)
	if err != nil {
		return core.IncomeRecord{}, fmt.Errorf("save income record: %w", err)
	}

	s.publish(ctx, amqp.KindIncome, saved.ID)
	return saved, nil
}

// CreatePurchaseRecord recomputes every line item before persisting, so a
// client can never submit a price that disagrees with quantity, weight and
// rate. The record amount is the sum of the recomputed prices.
func (s *RecordService) CreatePurchaseRecord(ctx context.Context, rec core.PurchaseRecord) (core.PurchaseRecord, error) {
	if err := rec.Validate(); err != nil {
		return core.PurchaseRecord{}, err
	}

	items := core.Reindex(rec.Items)
	total := 0.0
	for i := range items {
		items[i] = core.Recompute(items[i])
		total += items[i].Price
	}
	rec.Items = items
	rec.Amount = total

	saved, err := s.storage.CreatePurchaseRecord(ctx, rec)
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("save purchase record: %w", err)
	}

	s.publish(ctx, amqp.KindPurchase, saved.ID)
	return saved, nil
}

func (s *RecordService) CreateOwnerRecord(ctx context.Context, rec core.OwnerRecord) (core.OwnerRecord, error) {
	if err := rec.Validate(); err != nil {
		return core.OwnerRecord{}, err
	}

	saved, err := s.storage.CreateOwnerRecord(ctx, rec)
	if err != nil {
		return core.OwnerRecord{}, fmt.Errorf("save owner record: %w", err)
	}

	s.publish(ctx, amqp.KindOwner, saved.ID)
	return saved, nil
}

func (s *RecordService) CreateCutoffRecord(ctx context.Context, rec core.CutoffRecord) (core.CutoffRecord, error) {
	if err := rec.Validate(); err != nil {
		return core.CutoffRecord{}, err
	}

	saved, err := s.storage.CreateCutoffRecord(ctx, rec)
	if err != nil {
		return core.CutoffRecord{}, fmt.Errorf("save cutoff record: %w", err)
	}

	s.publish(ctx, amqp.KindCutoff, saved.ID)
	return saved, nil
}

func (s *RecordService) publish(ctx context.Context, kind string, id int64) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping publish", "kind", kind, "id", id)
		return
	}
	if err := s.amqpClient.PublishRecordCreated(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record created message",
			"kind", kind, "id", id, "error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}
	return nil
}
