package dto

import "github.com/shopspring/decimal"

type AddItemInput struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type SetQuantityInput struct {
	Quantity int `json:"quantity"`
}

type CartLine struct {
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Available int             `json:"available"`
}

type CartView struct {
	Items     []CartLine      `json:"items"`
	UnitCount int             `json:"unit_count"`
	Total     decimal.Decimal `json:"total"`
}
