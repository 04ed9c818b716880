package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/service"
)

type ListAPI interface {
	List(ctx context.Context, q listquery.Query) (models.Page, error)
}

type SettingsAPI interface {
	Get(ctx context.Context) (models.MaxRewardSettings, error)
}

type DashboardAPI interface {
	Summary(ctx context.Context) (service.Dashboard, error)
}

type AuditLister interface {
	Recent(ctx context.Context, action string, limit int) ([]models.AuditEntry, error)
}

// NopAuditLister is used when no audit database is configured.
type NopAuditLister struct{}

func (NopAuditLister) Recent(context.Context, string, int) ([]models.AuditEntry, error) {
	return []models.AuditEntry{}, nil
}

// listResponse keeps the paginated {data, meta} shape the list screens render.
type listResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Query   map[string][]string `json:"query"`
	models.Page
}

type ReportHandler struct {
	lists     ListAPI
	settings  SettingsAPI
	dashboard DashboardAPI
	audit     AuditLister
	log       logrus.FieldLogger
}

func NewReportHandler(lists ListAPI, settings SettingsAPI, dashboard DashboardAPI, audit AuditLister, log logrus.FieldLogger) *ReportHandler {
	if audit == nil {
		audit = NopAuditLister{}
	}
	return &ReportHandler{lists: lists, settings: settings, dashboard: dashboard, audit: audit, log: log}
}

// List handles GET /api/lists/{screen}
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listquery.FromValues(listquery.Screen(chi.URLParam(r, "screen")), r.URL.Query())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	page, err := h.lists.List(r.Context(), q)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Query: q.Params(), Page: page})
}

// Settings handles GET /api/settings
func (h *ReportHandler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "", map[string]interface{}{
		"maxreward":                s,
		"points_per_currency_unit": s.PointsPerCurrencyUnit(),
	})
}

// Dashboard handles GET /api/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "", d)
}

// Audit handles GET /api/audit?action=&limit=
func (h *ReportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.audit.Recent(r.Context(), r.URL.Query().Get("action"), limit)
	if err != nil {
		h.log.WithError(err).Error("audit query failed")
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "audit_unavailable"})
		return
	}
	writeData(w, http.StatusOK, "", entries)
}
