package handler

import (
	"net/http"

	"github.com/libreria/sales-service/internal/catalog"
	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog", h.ListBooks)
	mux.HandleFunc("GET /api/v1/catalog/{id}", h.GetBook)
}

func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	listings, err := h.uc.ListBooks(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list catalog", zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"books": listings,
		"total": len(listings),
	})
}

func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, listing)
}
