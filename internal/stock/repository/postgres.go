package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/libreria/sales-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Append(ctx context.Context, entry *model.StockEntry) error {
	query := `
        INSERT INTO stock_entries (id, book_id, warehouse_id, quantity, note, created_at)
        VALUES (:id, :book_id, :warehouse_id, :quantity, :note, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) AvailabilityOf(ctx context.Context, bookID string) (int, error) {
	var available int
	err := r.DB.GetContext(ctx, &available,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE book_id = $1`, bookID)
	return available, err
}

func (r *PGRepository) AvailabilityFor(ctx context.Context, bookIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(bookIDs))
	for _, id := range bookIDs {
		result[id] = 0
	}
	if len(bookIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
        SELECT book_id, COALESCE(SUM(quantity), 0) AS available
        FROM stock_entries
        WHERE book_id IN (?)
        GROUP BY book_id
    `, bookIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	rows := []struct {
		BookID    string `db:"book_id"`
		Available int    `db:"available"`
	}{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.BookID] = row.Available
	}
	return result, nil
}

func (r *PGRepository) ListByBook(ctx context.Context, bookID string) ([]model.StockEntry, error) {
	entries := []model.StockEntry{}
	err := r.DB.SelectContext(ctx, &entries,
		`SELECT * FROM stock_entries WHERE book_id = $1 ORDER BY created_at DESC`, bookID)
	return entries, err
}
