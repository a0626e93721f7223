package dto

import "github.com/libreria/sales-service/internal/model"

type ReceiptInput struct {
	BookID      string `json:"book_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
}

type BookLedger struct {
	BookID    string             `json:"book_id"`
	Available int                `json:"available"`
	Entries   []model.StockEntry `json:"entries"`
}
