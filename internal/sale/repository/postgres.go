package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale"
	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) UpsertCustomer(ctx context.Context, c *model.Customer) (string, error) {
	query := `
        INSERT INTO customers (id, first_name, last_name, phone, email, joined_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (phone) DO UPDATE
        SET first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            email = EXCLUDED.email
        RETURNING id
    `
	var id string
	err := r.DB.GetContext(ctx, &id, query, c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.JoinedAt)
	if err != nil {
		return "", errors.Wrap(err, "failed to upsert customer")
	}
	return id, nil
}

func (r *PGRepository) CreateWithLines(ctx context.Context, s *model.Sale, lines []model.SaleLine) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	titles, err := lockBooks(ctx, tx, bookIDs(lines))
	if err != nil {
		return err
	}

	if err := checkAvailability(ctx, tx, lines, titles); err != nil {
		return err
	}

	insertSale := `
        INSERT INTO sales (id, customer_id, staff_id, total, status, created_at)
        VALUES (:id, :customer_id, :staff_id, :total, :status, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, insertSale, s); err != nil {
		return errors.Wrap(err, "failed to insert sale")
	}

	insertLine := `
        INSERT INTO sale_lines (id, sale_id, book_id, quantity, unit_price, created_at)
        VALUES (:id, :sale_id, :book_id, :quantity, :unit_price, :created_at)
    `
	for i := range lines {
		if _, err := tx.NamedExecContext(ctx, insertLine, &lines[i]); err != nil {
			return errors.Wrap(err, "failed to insert sale line")
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sales WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindDetail(ctx context.Context, id string) (*dto.SaleDetail, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}

	lines := []dto.SaleLineDetail{}
	query := `
        SELECT l.id, l.sale_id, l.book_id, l.quantity, l.unit_price, l.created_at, b.title
        FROM sale_lines l
        JOIN books b ON b.id = l.book_id
        WHERE l.sale_id = $1
        ORDER BY b.title ASC
    `
	if err := r.DB.SelectContext(ctx, &lines, query, id); err != nil {
		return nil, err
	}

	computed := decimal.Zero
	for _, l := range lines {
		computed = computed.Add(l.LineTotal())
	}

	return &dto.SaleDetail{
		Sale:          *s,
		Lines:         lines,
		ComputedTotal: computed,
	}, nil
}

func (r *PGRepository) Confirm(ctx context.Context, id, warehouseID string) (model.SaleStatus, error) {
	if warehouseID == "" {
		return "", model.ErrWarehouseNotConfigured
	}
	return r.transition(ctx, id, model.SaleStatusConfirmed, warehouseID)
}

func (r *PGRepository) Cancel(ctx context.Context, id string) (model.SaleStatus, error) {
	return r.transition(ctx, id, model.SaleStatusCancelled, "")
}

// transition locks the sale row, resolves the requested status change
// against the persisted status and, for a first confirmation, appends the
// negative ledger entries in the same transaction. Any failure rolls the
// whole thing back, status included.
func (r *PGRepository) transition(ctx context.Context, id string, next model.SaleStatus, warehouseID string) (model.SaleStatus, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var prev model.SaleStatus
	err = tx.GetContext(ctx, &prev, `SELECT status FROM sales WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrSaleNotFound
		}
		return "", err
	}

	deduct, noop, err := sale.ResolveTransition(prev, next)
	if err != nil {
		return prev, err
	}
	if noop {
		return prev, tx.Commit()
	}

	if deduct {
		if err := r.deductStock(ctx, tx, id, warehouseID); err != nil {
			return prev, err
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE sales SET status = $1 WHERE id = $2`, next, id); err != nil {
		return prev, errors.Wrap(err, "failed to update sale status")
	}

	return prev, tx.Commit()
}

func (r *PGRepository) deductStock(ctx context.Context, tx *sqlx.Tx, saleID, warehouseID string) error {
	lines := []model.SaleLine{}
	if err := tx.SelectContext(ctx, &lines, `SELECT * FROM sale_lines WHERE sale_id = $1`, saleID); err != nil {
		return errors.Wrap(err, "failed to load sale lines")
	}

	titles, err := lockBooks(ctx, tx, bookIDs(lines))
	if err != nil {
		return err
	}

	if err := checkAvailability(ctx, tx, lines, titles); err != nil {
		return err
	}

	insert := `
        INSERT INTO stock_entries (id, book_id, warehouse_id, quantity, note, created_at)
        VALUES (:id, :book_id, :warehouse_id, :quantity, :note, :created_at)
    `
	now := time.Now()
	for _, line := range lines {
		entry := &model.StockEntry{
			ID:          uuid.New().String(),
			BookID:      line.BookID,
			WarehouseID: warehouseID,
			Quantity:    -line.Quantity,
			Note:        fmt.Sprintf("sale confirmed #%s", saleID),
			CreatedAt:   now,
		}
		if _, err := tx.NamedExecContext(ctx, insert, entry); err != nil {
			return errors.Wrap(err, "failed to append deduction entry")
		}
	}

	return nil
}

func bookIDs(lines []model.SaleLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.BookID)
	}
	// Deterministic lock order keeps concurrent transitions from
	// deadlocking on overlapping carts.
	sort.Strings(ids)
	return ids
}

// lockBooks takes row locks on the books so concurrent availability checks
// for the same titles serialize, and returns their titles keyed by id.
func lockBooks(ctx context.Context, tx *sqlx.Tx, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, title FROM books WHERE id IN (?) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	rows := []struct {
		ID    string `db:"id"`
		Title string `db:"title"`
	}{}
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to lock books")
	}

	titles := make(map[string]string, len(rows))
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	for _, id := range ids {
		if _, ok := titles[id]; !ok {
			return nil, model.ErrBookNotFound
		}
	}
	return titles, nil
}

func checkAvailability(ctx context.Context, tx *sqlx.Tx, lines []model.SaleLine, titles map[string]string) error {
	for _, line := range lines {
		var available int
		err := tx.GetContext(ctx, &available,
			`SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE book_id = $1`, line.BookID)
		if err != nil {
			return errors.Wrap(err, "failed to read availability")
		}
		if line.Quantity > available {
			return &model.StockInsufficientError{
				BookID:    line.BookID,
				Title:     titles[line.BookID],
				Requested: line.Quantity,
				Available: available,
			}
		}
	}
	return nil
}
