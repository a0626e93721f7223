package stock

import (
	"context"

	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/stock/dto"
)

type UseCase interface {
	// ReceiveStock records a manual receipt (positive quantity only).
	ReceiveStock(ctx context.Context, input *dto.ReceiptInput) (*model.StockEntry, error)

	// BookLedger returns current availability plus the raw entries.
	BookLedger(ctx context.Context, bookID string) (*dto.BookLedger, error)
}
