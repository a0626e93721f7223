package model

import "github.com/shopspring/decimal"

type Publisher struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Phone string  `db:"phone"`
	Email *string `db:"email"`
}

// Book is a sellable title. Price edits never touch past sales; sale lines
// snapshot the unit price at the time they are written.
type Book struct {
	ID          string          `db:"id" json:"id"`
	PublisherID string          `db:"publisher_id" json:"publisher_id"`
	Title       string          `db:"title" json:"title"`
	Author      string          `db:"author" json:"author"`
	Illustrator *string         `db:"illustrator" json:"illustrator"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CoverURL    *string         `db:"cover_url" json:"cover_url"`
	Synopsis    *string         `db:"synopsis" json:"synopsis"`
}
