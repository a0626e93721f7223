package handler

import (
	"net/http"

	"github.com/libreria/sales-service/internal/report"
	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) Register(mux *http.ServeMux, admin func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/v1/reports/dashboard", admin(h.Dashboard))
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.uc.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		server.WriteError(w, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, dash)
}
