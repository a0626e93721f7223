package cart

import (
	"context"

	"github.com/libreria/sales-service/internal/cart/dto"
	"github.com/libreria/sales-service/internal/model"
)

type UseCase interface {
	// View joins the cart against live book rows: titles and availability
	// reflect the current catalog, prices stay the snapshot taken at add
	// time.
	View(ctx context.Context, sessionID string) (*dto.CartView, error)

	// Add accumulates quantity for a book, snapshotting its current price
	// on first add. The stock check here is advisory; checkout re-validates.
	Add(ctx context.Context, sessionID string, input *dto.AddItemInput) error

	// SetQuantity replaces the quantity for a book already priced in the
	// cart (or prices it now). Zero is rejected; removal is explicit.
	SetQuantity(ctx context.Context, sessionID, bookID string, quantity int) error

	Remove(ctx context.Context, sessionID, bookID string) error
	Clear(ctx context.Context, sessionID string) error

	// Snapshot hands the raw cart to checkout.
	Snapshot(ctx context.Context, sessionID string) (*model.Cart, error)
}
