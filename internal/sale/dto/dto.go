package dto

import (
	"github.com/libreria/sales-service/internal/model"
	"github.com/shopspring/decimal"
)

type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type CheckoutInput struct {
	Contact
}

// PendingOrder is the transient bridge between checkout and the
// confirmation page. It lives in the session store and is consumed on
// first read.
type PendingOrder struct {
	SaleID  string  `json:"sale_id"`
	Contact Contact `json:"contact"`
}

type SaleLineDetail struct {
	model.SaleLine
	Title string `db:"title" json:"title"`
}

// SaleDetail carries the recorded total alongside a total recomputed from
// the lines, so any divergence between the two is visible to callers.
type SaleDetail struct {
	Sale          model.Sale       `json:"sale"`
	Lines         []SaleLineDetail `json:"lines"`
	ComputedTotal decimal.Decimal  `json:"computed_total"`
}

type Confirmation struct {
	OrderID     string `json:"order_id"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}
