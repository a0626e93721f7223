package report

import (
	"context"
	"time"

	"github.com/libreria/sales-service/internal/report/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// TotalSince sums recorded sale totals created at or after from.
	TotalSince(ctx context.Context, from time.Time) (decimal.Decimal, error)

	// TopCustomers ranks customers by lifetime recorded spend.
	TopCustomers(ctx context.Context, limit int) ([]dto.CustomerSpend, error)
}
