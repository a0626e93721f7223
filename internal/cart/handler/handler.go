package handler

import (
	"net/http"

	"github.com/libreria/sales-service/internal/cart"
	"github.com/libreria/sales-service/internal/cart/dto"
	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/cart", h.View)
	mux.HandleFunc("POST /api/v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/v1/cart/items/{bookID}", h.SetQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/items/{bookID}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart", h.Clear)
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	view, err := h.uc.View(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	var input dto.AddItemInput
	if err := server.DecodeJSON(r, &input); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.uc.Add(r.Context(), sessionID, &input); err != nil {
		server.WriteError(w, err)
		return
	}

	view, err := h.uc.View(r.Context(), sessionID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	var input dto.SetQuantityInput
	if err := server.DecodeJSON(r, &input); err != nil {
		server.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.uc.SetQuantity(r.Context(), sessionID, r.PathValue("bookID"), input.Quantity); err != nil {
		server.WriteError(w, err)
		return
	}

	view, err := h.uc.View(r.Context(), sessionID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	if err := h.uc.Remove(r.Context(), sessionID, r.PathValue("bookID")); err != nil {
		server.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := server.SessionID(w, r)

	if err := h.uc.Clear(r.Context(), sessionID); err != nil {
		server.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
