package handler

import (
	"net/http"

	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/internal/stock"
	"github.com/libreria/sales-service/internal/stock/dto"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StockHandler) Register(mux *http.ServeMux, admin func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/stock/receipts", admin(h.ReceiveStock))
	mux.HandleFunc("GET /api/v1/stock/books/{id}", admin(h.BookLedger))
}

func (h *StockHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var input dto.ReceiptInput
	if err := server.DecodeJSON(r, &input); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	entry, err := h.uc.ReceiveStock(r.Context(), &input)
	if err != nil {
		h.logger.Warn("stock receipt rejected", zap.String("book_id", input.BookID), zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusCreated, entry)
}

func (h *StockHandler) BookLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.uc.BookLedger(r.Context(), r.PathValue("id"))
	if err != nil {
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, ledger)
}
