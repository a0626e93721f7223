package dto

import "github.com/shopspring/decimal"

type CustomerSpend struct {
	CustomerID string          `db:"customer_id" json:"customer_id"`
	FirstName  string          `db:"first_name" json:"first_name"`
	LastName   string          `db:"last_name" json:"last_name"`
	Spent      decimal.Decimal `db:"spent" json:"spent"`
}

type Dashboard struct {
	SalesToday   decimal.Decimal `json:"sales_today"`
	SalesWeek    decimal.Decimal `json:"sales_week"`
	TopCustomers []CustomerSpend `json:"top_customers"`
}
