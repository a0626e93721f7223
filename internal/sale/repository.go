package sale

import (
	"context"

	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale/dto"
)

type Repository interface {
	// UpsertCustomer creates or refreshes the customer record keyed by
	// phone and returns its id. Repeat buyers keep one record, which is
	// what the spend ranking aggregates over.
	UpsertCustomer(ctx context.Context, c *model.Customer) (string, error)

	// CreateWithLines persists the sale header and its lines in one
	// transaction, re-checking ledger availability for every line under
	// book row locks. Nothing is written if any line is short.
	CreateWithLines(ctx context.Context, s *model.Sale, lines []model.SaleLine) error

	FindByID(ctx context.Context, id string) (*model.Sale, error)
	FindDetail(ctx context.Context, id string) (*dto.SaleDetail, error)

	// Confirm applies PENDING -> CONFIRMED and, in the same transaction,
	// appends one negative ledger entry per line against warehouseID.
	// The previous persisted status is returned; when it was already
	// CONFIRMED the call is a no-op with no ledger effect.
	Confirm(ctx context.Context, id, warehouseID string) (model.SaleStatus, error)

	// Cancel applies PENDING -> CANCELLED. No stock effect, ever.
	Cancel(ctx context.Context, id string) (model.SaleStatus, error)
}

// PendingOrderStore holds the single-read checkout context per session.
type PendingOrderStore interface {
	Put(ctx context.Context, sessionID string, order *dto.PendingOrder) error

	// Pop consumes the context; a second call returns nil.
	Pop(ctx context.Context, sessionID string) (*dto.PendingOrder, error)
}
