package cart

import (
	"context"

	"github.com/libreria/sales-service/internal/model"
)

// Repository stores one cart per session. Carts are ephemeral; expiry is the
// store's concern and a missing cart is just an empty one.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, sessionID string, c *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
