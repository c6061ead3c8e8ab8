package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"agriledger/internal/core"

	_ "modernc.org/sqlite"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Repository is the SQLite-backed store for every entity the API serves.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// parseDate turns a stored date string into a time.Time. Unparsable or
// empty values come back as the zero time, which the aggregator treats
// as "no date" rather than an error.
func parseDate(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	for _, layout := range []string{dateLayout, timestampLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Buyers

func (r *Repository) CreateBuyer(ctx context.Context, b core.Buyer) (core.Buyer, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO buyers (name, location, amount) VALUES (?, ?, ?)`,
		b.Name, b.Location, b.Amount)
	if err != nil {
		return core.Buyer{}, fmt.Errorf("insert buyer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Buyer{}, fmt.Errorf("buyer id: %w", err)
	}
	return r.GetBuyer(ctx, id)
}

func (r *Repository) GetBuyer(ctx context.Context, id int64) (core.Buyer, error) {
	var (
		b       core.Buyer
		created sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, amount, created_date FROM buyers WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Location, &b.Amount, &created)
	if err != nil {
		return core.Buyer{}, fmt.Errorf("get buyer %d: %w", id, err)
	}
	b.CreatedDate = parseDate(created)
	return b, nil
}

// ListBuyers returns buyers newest-first, optionally narrowed by name and
// location substring search.
func (r *Repository) ListBuyers(ctx context.Context, name, location string) ([]core.Buyer, error) {
	query := `SELECT id, name, location, amount, created_date FROM buyers WHERE 1=1`
	args := []any{}
	if name != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+name+"%")
	}
	if location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+location+"%")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list buyers: %w", err)
	}
	defer rows.Close()

	var out []core.Buyer
	for rows.Next() {
		var (
			b       core.Buyer
			created sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.Amount, &created); err != nil {
			return nil, fmt.Errorf("scan buyer: %w", err)
		}
		b.CreatedDate = parseDate(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateBuyer(ctx context.Context, b core.Buyer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE buyers SET name = ?, location = ?, amount = ? WHERE id = ?`,
		b.Name, b.Location, b.Amount, b.ID)
	if err != nil {
		return fmt.Errorf("update buyer %d: %w", b.ID, err)
	}
	return requireRow(res, "buyer", b.ID)
}

func (r *Repository) DeleteBuyer(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM buyers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete buyer %d: %w", id, err)
	}
	return requireRow(res, "buyer", id)
}

// Land owners

func (r *Repository) CreateLandOwner(ctx context.Context, o core.LandOwner) (core.LandOwner, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO land_owners (name, location, amount) VALUES (?, ?, ?)`,
		o.Name, o.Location, o.Amount)
	if err != nil {
		return core.LandOwner{}, fmt.Errorf("insert land owner: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.LandOwner{}, fmt.Errorf("land owner id: %w", err)
	}
	return r.GetLandOwner(ctx, id)
}

func (r *Repository) GetLandOwner(ctx context.Context, id int64) (core.LandOwner, error) {
	var (
		o       core.LandOwner
		created sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, amount, created_date FROM land_owners WHERE id = ?`, id).
		Scan(&o.ID, &o.Name, &o.Location, &o.Amount, &created)
	if err != nil {
		return core.LandOwner{}, fmt.Errorf("get land owner %d: %w", id, err)
	}
	o.CreatedDate = parseDate(created)
	return o, nil
}

func (r *Repository) ListLandOwners(ctx context.Context, name, location string) ([]core.LandOwner, error) {
	query := `SELECT id, name, location, amount, created_date FROM land_owners WHERE 1=1`
	args := []any{}
	if name != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+name+"%")
	}
	if location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+location+"%")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list land owners: %w", err)
	}
	defer rows.Close()

	var out []core.LandOwner
	for rows.Next() {
		var (
			o       core.LandOwner
			created sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Name, &o.Location, &o.Amount, &created); err != nil {
			return nil, fmt.Errorf("scan land owner: %w", err)
		}
		o.CreatedDate = parseDate(created)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateLandOwner(ctx context.Context, o core.LandOwner) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE land_owners SET name = ?, location = ?, amount = ? WHERE id = ?`,
		o.Name, o.Location, o.Amount, o.ID)
	if err != nil {
		return fmt.Errorf("update land owner %d: %w", o.ID, err)
	}
	return requireRow(res, "land owner", o.ID)
}

func (r *Repository) DeleteLandOwner(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM land_owners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete land owner %d: %w", id, err)
	}
	return requireRow(res, "land owner", id)
}

// Lands

func (r *Repository) CreateLand(ctx context.Context, l core.Land) (core.Land, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lands (land_owner_id, name, area, place, variant, trees, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.LandOwnerID, l.Name, l.Area, l.Place, l.Variant, l.Trees, l.Amount)
	if err != nil {
		return core.Land{}, fmt.Errorf("insert land: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Land{}, fmt.Errorf("land id: %w", err)
	}
	l.ID = id
	return l, nil
}

func (r *Repository) ListLands(ctx context.Context) ([]core.Land, error) {
	return r.queryLands(ctx,
		`SELECT id, land_owner_id, name, area, place, variant, trees, amount
		 FROM lands ORDER BY id DESC`)
}

func (r *Repository) ListLandsByOwner(ctx context.Context, ownerID int64) ([]core.Land, error) {
	return r.queryLands(ctx,
		`SELECT id, land_owner_id, name, area, place, variant, trees, amount
		 FROM lands WHERE land_owner_id = ? ORDER BY id DESC`, ownerID)
}

func (r *Repository) queryLands(ctx context.Context, query string, args ...any) ([]core.Land, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lands: %w", err)
	}
	defer rows.Close()

	var out []core.Land
	for rows.Next() {
		var l core.Land
		if err := rows.Scan(&l.ID, &l.LandOwnerID, &l.Name, &l.Area, &l.Place, &l.Variant, &l.Trees, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan land: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Land available

func (r *Repository) CreateLandAvailable(ctx context.Context, l core.LandAvailable) (core.LandAvailable, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO land_available (name, area, place, variant, trees) VALUES (?, ?, ?, ?, ?)`,
		l.Name, l.Area, l.Place, l.Variant, l.Trees)
	if err != nil {
		return core.LandAvailable{}, fmt.Errorf("insert land available: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.LandAvailable{}, fmt.Errorf("land available id: %w", err)
	}
	return r.GetLandAvailable(ctx, id)
}

func (r *Repository) GetLandAvailable(ctx context.Context, id int64) (core.LandAvailable, error) {
	var (
		l       core.LandAvailable
		created sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, area, place, variant, trees, created_date FROM land_available WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Area, &l.Place, &l.Variant, &l.Trees, &created)
	if err != nil {
		return core.LandAvailable{}, fmt.Errorf("get land available %d: %w", id, err)
	}
	l.CreatedDate = parseDate(created)
	return l, nil
}

func (r *Repository) ListLandAvailable(ctx context.Context, name string) ([]core.LandAvailable, error) {
	query := `SELECT id, name, area, place, variant, trees, created_date FROM land_available`
	args := []any{}
	if name != "" {
		query += ` WHERE name LIKE ?`
		args = append(args, "%"+name+"%")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list land available: %w", err)
	}
	defer rows.Close()

	var out []core.LandAvailable
	for rows.Next() {
		var (
			l       core.LandAvailable
			created sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Area, &l.Place, &l.Variant, &l.Trees, &created); err != nil {
			return nil, fmt.Errorf("scan land available: %w", err)
		}
		l.CreatedDate = parseDate(created)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateLandAvailable(ctx context.Context, l core.LandAvailable) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE land_available SET name = ?, area = ?, place = ?, variant = ?, trees = ? WHERE id = ?`,
		l.Name, l.Area, l.Place, l.Variant, l.Trees, l.ID)
	if err != nil {
		return fmt.Errorf("update land available %d: %w", l.ID, err)
	}
	return requireRow(res, "land available", l.ID)
}

func (r *Repository) DeleteLandAvailable(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM land_available WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete land available %d: %w", id, err)
	}
	return requireRow(res, "land available", id)
}

// Products

func (r *Repository) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProductCatalog returns the id to display-name mapping consulted when
// line items are serialized.
func (r *Repository) ProductCatalog(ctx context.Context) (map[int64]string, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[int64]string, len(products))
	for _, p := range products {
		catalog[p.ID] = p.Name
	}
	return catalog, nil
}

func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", entity, id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
