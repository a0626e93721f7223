package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale is the durable header of a purchase. Total is recorded at checkout
// and must match the sum of quantity x unit price over the lines; the
// service recomputes that sum on reads so drift is observable.
type Sale struct {
	ID         string          `db:"id" json:"id"`
	CustomerID *string         `db:"customer_id" json:"customer_id"`
	StaffID    *string         `db:"staff_id" json:"staff_id"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Status     SaleStatus      `db:"status" json:"status"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// SaleLine is immutable once written; UnitPrice is the price at sale time,
// not the book's current price.
type SaleLine struct {
	ID        string          `db:"id" json:"id"`
	SaleID    string          `db:"sale_id" json:"sale_id"`
	BookID    string          `db:"book_id" json:"book_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

func (l SaleLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
