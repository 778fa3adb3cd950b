package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
)

type dashboardHandler struct {
	dashboardSvc service.DashboardService
	settings     model.Settings
}

func newDashboardHandler(dashboardSvc service.DashboardService, settings model.Settings) *dashboardHandler {
	return &dashboardHandler{dashboardSvc: dashboardSvc, settings: settings}
}

func (h *dashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.dashboardSvc.GetStats(r.Context())
	if err != nil {
		return fmt.Errorf("dashboard service get stats: %w", err)
	}
	return writeJSON(w, http.StatusOK, stats)
}

func (h *dashboardHandler) SalesReport(w http.ResponseWriter, r *http.Request) error {
	var from, to *time.Time
	if err := queryParam(r, "from", &from); err != nil {
		return err
	}
	if err := queryParam(r, "to", &to); err != nil {
		return err
	}

	report, err := h.dashboardSvc.SalesReport(r.Context(), from, to)
	if err != nil {
		return fmt.Errorf("dashboard service sales report: %w", err)
	}
	return writeJSON(w, http.StatusOK, report)
}

func (h *dashboardHandler) InventoryReport(w http.ResponseWriter, r *http.Request) error {
	report, err := h.dashboardSvc.InventoryReport(r.Context())
	if err != nil {
		return fmt.Errorf("dashboard service inventory report: %w", err)
	}
	return writeJSON(w, http.StatusOK, report)
}

func (h *dashboardHandler) LeadsReport(w http.ResponseWriter, r *http.Request) error {
	report, err := h.dashboardSvc.LeadsReport(r.Context())
	if err != nil {
		return fmt.Errorf("dashboard service leads report: %w", err)
	}
	return writeJSON(w, http.StatusOK, report)
}

func (h *dashboardHandler) GetSettings(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, h.settings)
}
