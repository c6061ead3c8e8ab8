package storage

import (
	"context"
	"database/sql"
	"fmt"

	"agriledger/internal/core"
)

// Income records

func (r *Repository) CreateIncomeRecord(ctx context.Context, rec core.IncomeRecord) (core.IncomeRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO income_records (buyer_id, visit_date, amount) VALUES (?, ?, ?)`,
		rec.BuyerID, formatDate(rec.VisitDate), rec.Amount)
	if err != nil {
		return core.IncomeRecord{}, fmt.Errorf("insert income record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.IncomeRecord{}, fmt.Errorf("income record id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r *Repository) GetIncomeRecord(ctx context.Context, id int64) (core.IncomeRecord, error) {
	var (
		rec   core.IncomeRecord
		visit sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, buyer_id, visit_date, amount FROM income_records WHERE id = ?`, id).
		Scan(&rec.ID, &rec.BuyerID, &visit, &rec.Amount)
	if err != nil {
		return core.IncomeRecord{}, fmt.Errorf("get income record %d: %w", id, err)
	}
	rec.VisitDate = parseDate(visit)
	return rec, nil
}

func (r *Repository) ListIncomeRecordsByBuyer(ctx context.Context, buyerID int64) ([]core.IncomeRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, buyer_id, visit_date, amount FROM income_records
		 WHERE buyer_id = ? ORDER BY visit_date DESC, id DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list income records: %w", err)
	}
	defer rows.Close()

	var out []core.IncomeRecord
	for rows.Next() {
		var (
			rec   core.IncomeRecord
			visit sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.BuyerID, &visit, &rec.Amount); err != nil {
			return nil, fmt.Errorf("scan income record: %w", err)
		}
		rec.VisitDate = parseDate(visit)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateIncomeRecord(ctx context.Context, rec core.IncomeRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE income_records SET buyer_id = ?, visit_date = ?, amount = ? WHERE id = ?`,
		rec.BuyerID, formatDate(rec.VisitDate), rec.Amount, rec.ID)
	if err != nil {
		return fmt.Errorf("update income record %d: %w", rec.ID, err)
	}
	return requireRow(res, "income record", rec.ID)
}

func (r *Repository) DeleteIncomeRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM income_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income record %d: %w", id, err)
	}
	return requireRow(res, "income record", id)
}

// Purchase records. The header row and its line items are written in one
// transaction so a failed item insert never leaves a headless record.

func (r *Repository) CreatePurchaseRecord(ctx context.Context, rec core.PurchaseRecord) (core.PurchaseRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO purchase_records (buyer_id, visit_date, amount) VALUES (?, ?, ?)`,
		rec.BuyerID, formatDate(rec.VisitDate), rec.Amount)
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("insert purchase record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("purchase record id: %w", err)
	}

	catalog, err := r.ProductCatalog(ctx)
	if err != nil {
		return core.PurchaseRecord{}, err
	}

	for _, item := range rec.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchase_items
			 (record_id, product_id, product_name, quantity, weight, rate, calc_by, price, order_index)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, item.ProductID, catalog[item.ProductID],
			item.Quantity, item.Weight, item.Rate, string(item.Basis), item.Price, item.OrderIndex)
		if err != nil {
			return core.PurchaseRecord{}, fmt.Errorf("insert purchase item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("commit purchase tx: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r *Repository) GetPurchaseRecord(ctx context.Context, id int64) (core.PurchaseRecord, error) {
	var (
		rec   core.PurchaseRecord
		visit sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, buyer_id, visit_date, amount FROM purchase_records WHERE id = ?`, id).
		Scan(&rec.ID, &rec.BuyerID, &visit, &rec.Amount)
	if err != nil {
		return core.PurchaseRecord{}, fmt.Errorf("get purchase record %d: %w", id, err)
	}
	rec.VisitDate = parseDate(visit)

	items, err := r.ListPurchaseItems(ctx, id)
	if err != nil {
		return core.PurchaseRecord{}, err
	}
	rec.Items = items
	return rec, nil
}

func (r *Repository) ListPurchaseRecordsByBuyer(ctx context.Context, buyerID int64) ([]core.PurchaseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, buyer_id, visit_date, amount FROM purchase_records
		 WHERE buyer_id = ? ORDER BY visit_date DESC, id DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list purchase records: %w", err)
	}
	defer rows.Close()

	var out []core.PurchaseRecord
	for rows.Next() {
		var (
			rec   core.PurchaseRecord
			visit sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.BuyerID, &visit, &rec.Amount); err != nil {
			return nil, fmt.Errorf("scan purchase record: %w", err)
		}
		rec.VisitDate = parseDate(visit)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.ListPurchaseItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *Repository) ListPurchaseItems(ctx context.Context, recordID int64) ([]core.LineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, weight, rate, calc_by, price, order_index
		 FROM purchase_items WHERE record_id = ? ORDER BY order_index, id`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()

	var out []core.LineItem
	for rows.Next() {
		var (
			item  core.LineItem
			basis string
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Weight, &item.Rate, &basis, &item.Price, &item.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		item.Basis = core.CalcBasis(basis)
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *Repository) DeletePurchaseRecord(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_items WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("delete purchase items %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM purchase_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase record %d: %w", id, err)
	}
	if err := requireRow(res, "purchase record", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Owner records

func (r *Repository) CreateOwnerRecord(ctx context.Context, rec core.OwnerRecord) (core.OwnerRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO owner_records (land_owner_id, visit_date, amount, reason) VALUES (?, ?, ?, ?)`,
		rec.LandOwnerID, formatDate(rec.VisitDate), rec.Amount, rec.Reason)
	if err != nil {
		return core.OwnerRecord{}, fmt.Errorf("insert owner record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.OwnerRecord{}, fmt.Errorf("owner record id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r *Repository) GetOwnerRecord(ctx context.Context, id int64) (core.OwnerRecord, error) {
	var (
		rec   core.OwnerRecord
		visit sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, land_owner_id, visit_date, amount, reason FROM owner_records WHERE id = ?`, id).
		Scan(&rec.ID, &rec.LandOwnerID, &visit, &rec.Amount, &rec.Reason)
	if err != nil {
		return core.OwnerRecord{}, fmt.Errorf("get owner record %d: %w", id, err)
	}
	rec.VisitDate = parseDate(visit)
	return rec, nil
}

func (r *Repository) ListOwnerRecordsByOwner(ctx context.Context, ownerID int64) ([]core.OwnerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, land_owner_id, visit_date, amount, reason FROM owner_records
		 WHERE land_owner_id = ? ORDER BY visit_date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner records: %w", err)
	}
	defer rows.Close()

	var out []core.OwnerRecord
	for rows.Next() {
		var (
			rec   core.OwnerRecord
			visit sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.LandOwnerID, &visit, &rec.Amount, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan owner record: %w", err)
		}
		rec.VisitDate = parseDate(visit)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteOwnerRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owner_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete owner record %d: %w", id, err)
	}
	return requireRow(res, "owner record", id)
}

// Cutoff records

func (r *Repository) CreateCutoffRecord(ctx context.Context, rec core.CutoffRecord) (core.CutoffRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cutoff_records (land_id, name, area, variant, trees, ship, weight, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.LandID, rec.Name, rec.Area, rec.Variant, rec.Trees, rec.Ship, rec.Weight, rec.Amount)
	if err != nil {
		return core.CutoffRecord{}, fmt.Errorf("insert cutoff record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.CutoffRecord{}, fmt.Errorf("cutoff record id: %w", err)
	}
	return r.GetCutoffRecord(ctx, id)
}

func (r *Repository) GetCutoffRecord(ctx context.Context, id int64) (core.CutoffRecord, error) {
	var (
		rec     core.CutoffRecord
		created sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, land_id, name, area, variant, trees, ship, weight, amount, created_date
		 FROM cutoff_records WHERE id = ?`, id).
		Scan(&rec.ID, &rec.LandID, &rec.Name, &rec.Area, &rec.Variant, &rec.Trees, &rec.Ship, &rec.Weight, &rec.Amount, &created)
	if err != nil {
		return core.CutoffRecord{}, fmt.Errorf("get cutoff record %d: %w", id, err)
	}
	rec.CreatedDate = parseDate(created)
	return rec, nil
}

func (r *Repository) ListCutoffRecords(ctx context.Context) ([]core.CutoffRecord, error) {
	return r.queryCutoffRecords(ctx,
		`SELECT id, land_id, name, area, variant, trees, ship, weight, amount, created_date
		 FROM cutoff_records ORDER BY created_date DESC, id DESC`)
}

func (r *Repository) ListCutoffRecordsByLand(ctx context.Context, landID int64) ([]core.CutoffRecord, error) {
	return r.queryCutoffRecords(ctx,
		`SELECT id, land_id, name, area, variant, trees, ship, weight, amount, created_date
		 FROM cutoff_records WHERE land_id = ? ORDER BY created_date DESC, id DESC`, landID)
}

func (r *Repository) queryCutoffRecords(ctx context.Context, query string, args ...any) ([]core.CutoffRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cutoff records: %w", err)
	}
	defer rows.Close()

	var out []core.CutoffRecord
	for rows.Next() {
		var (
			rec     core.CutoffRecord
			created sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.LandID, &rec.Name, &rec.Area, &rec.Variant, &rec.Trees, &rec.Ship, &rec.Weight, &rec.Amount, &created); err != nil {
			return nil, fmt.Errorf("scan cutoff record: %w", err)
		}
		rec.CreatedDate = parseDate(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteCutoffRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cutoff_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cutoff record %d: %w", id, err)
	}
	return requireRow(res, "cutoff record", id)
}
