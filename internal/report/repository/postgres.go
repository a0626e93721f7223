package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/libreria/sales-service/internal/report/dto"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) TotalSince(ctx context.Context, from time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1`, from)
	return total, err
}

func (r *PGRepository) TopCustomers(ctx context.Context, limit int) ([]dto.CustomerSpend, error) {
	customers := []dto.CustomerSpend{}
	query := `
        SELECT c.id AS customer_id, c.first_name, c.last_name,
               COALESCE(SUM(s.total), 0) AS spent
        FROM customers c
        LEFT JOIN sales s ON s.customer_id = c.id
        GROUP BY c.id
        ORDER BY spent DESC
        LIMIT $1
    `
	err := r.DB.SelectContext(ctx, &customers, query, limit)
	return customers, err
}
