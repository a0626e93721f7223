package handler

import (
	"net/http"

	"github.com/libreria/sales-service/internal/sale"
	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SaleHandler) Register(mux *http.ServeMux, admin func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /api/v1/checkout", h.Checkout)
	mux.HandleFunc("GET /api/v1/orders/confirmation", h.Confirmation)
	mux.HandleFunc("GET /api/v1/sales/{id}", admin(h.GetSale))
	mux.HandleFunc("POST /api/v1/sales/{id}/confirm", admin(h.Confirm))
	mux.HandleFunc("POST /api/v1/sales/{id}/cancel", admin(h.Cancel))
}

func (h *SaleHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	var input dto.CheckoutInput
	if err := server.DecodeJSON(r, &input); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s, err := h.uc.Checkout(r.Context(), sessionID, &input)
	if err != nil {
		h.logger.Warn("checkout rejected", zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusCreated, s)
}

func (h *SaleHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	conf, err := h.uc.Confirmation(r.Context(), sessionID)
	if err != nil {
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, conf)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	detail, err := h.uc.GetSale(r.Context(), r.PathValue("id"))
	if err != nil {
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, detail)
}

func (h *SaleHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.Confirm(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Warn("confirm rejected", zap.String("sale_id", r.PathValue("id")), zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, s)
}

func (h *SaleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Warn("cancel rejected", zap.String("sale_id", r.PathValue("id")), zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, s)
}
