package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/libreria/sales-service/internal/catalog/dto"
	"github.com/libreria/sales-service/internal/model"
)

const listingColumns = `
    b.id, b.publisher_id, b.title, b.author, b.illustrator, b.cost, b.price,
    b.cover_url, b.synopsis,
    p.name AS publisher_name,
    COALESCE(SUM(s.quantity), 0) AS available
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAvailable(ctx context.Context, query string) ([]dto.BookListing, error) {
	q := `
        SELECT ` + listingColumns + `
        FROM books b
        JOIN publishers p ON p.id = b.publisher_id
        LEFT JOIN stock_entries s ON s.book_id = b.id
    `
	args := []interface{}{}
	if query != "" {
		q += ` WHERE b.title ILIKE $1 OR b.author ILIKE $1 OR p.name ILIKE $1`
		args = append(args, "%"+query+"%")
	}
	q += `
        GROUP BY b.id, p.name
        HAVING COALESCE(SUM(s.quantity), 0) > 0
        ORDER BY b.title ASC
    `

	listings := []dto.BookListing{}
	err := r.DB.SelectContext(ctx, &listings, q, args...)
	return listings, err
}

func (r *PGRepository) FindAvailableByIDs(ctx context.Context, ids []string) ([]dto.BookListing, error) {
	if len(ids) == 0 {
		return []dto.BookListing{}, nil
	}

	q, args, err := sqlx.In(`
        SELECT `+listingColumns+`
        FROM books b
        JOIN publishers p ON p.id = b.publisher_id
        LEFT JOIN stock_entries s ON s.book_id = b.id
        WHERE b.id IN (?)
        GROUP BY b.id, p.name
        HAVING COALESCE(SUM(s.quantity), 0) > 0
        ORDER BY b.title ASC
    `, ids)
	if err != nil {
		return nil, err
	}
	q = r.DB.Rebind(q)

	listings := []dto.BookListing{}
	err = r.DB.SelectContext(ctx, &listings, q, args...)
	return listings, err
}

func (r *PGRepository) GetListing(ctx context.Context, id string) (*dto.BookListing, error) {
	var listing dto.BookListing
	q := `
        SELECT ` + listingColumns + `
        FROM books b
        JOIN publishers p ON p.id = b.publisher_id
        LEFT JOIN stock_entries s ON s.book_id = b.id
        WHERE b.id = $1
        GROUP BY b.id, p.name
    `
	err := r.DB.GetContext(ctx, &listing, q, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.DB.GetContext(ctx, &book, `SELECT * FROM books WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}

	q, args, err := sqlx.In(`SELECT * FROM books WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	q = r.DB.Rebind(q)

	books := []model.Book{}
	err = r.DB.SelectContext(ctx, &books, q, args...)
	return books, err
}
