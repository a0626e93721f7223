package sale

import (
	"context"

	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale/dto"
)

type UseCase interface {
	// Checkout turns the session's cart into a PENDING sale. The whole
	// write is atomic; on any failure the cart is left untouched.
	Checkout(ctx context.Context, sessionID string, input *dto.CheckoutInput) (*model.Sale, error)

	// Confirmation pops the pending-order context for the session and
	// renders the WhatsApp handoff. Pure read plus format; repeated calls
	// fail once the context is consumed.
	Confirmation(ctx context.Context, sessionID string) (*dto.Confirmation, error)

	Confirm(ctx context.Context, saleID string) (*model.Sale, error)
	Cancel(ctx context.Context, saleID string) (*model.Sale, error)
	GetSale(ctx context.Context, saleID string) (*dto.SaleDetail, error)
}
