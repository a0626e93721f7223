package model

import "time"

type Warehouse struct {
	ID   string `db:"id"`
	Note string `db:"note"`
}

// StockEntry is one signed movement of a book at a warehouse. The ledger is
// append-only: receipts are positive, sale deductions negative, and the
// sellable quantity of a book is always the sum over its entries.
type StockEntry struct {
	ID          string    `db:"id" json:"id"`
	BookID      string    `db:"book_id" json:"book_id"`
	WarehouseID string    `db:"warehouse_id" json:"warehouse_id"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Note        string    `db:"note" json:"note"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
