package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/api/handlers"
	"github.com/Cheertaboi/maxreward-console/internal/api/middleware"
	"github.com/Cheertaboi/maxreward-console/internal/metrics"
)

// Deps are the services the console routes call into.
type Deps struct {
	Purchases handlers.PurchaseAPI
	Vouchers  handlers.VoucherAPI
	Lists     handlers.ListAPI
	Settings  handlers.SettingsAPI
	Dashboard handlers.DashboardAPI
	Audit     handlers.AuditLister

	// RateLimiter is optional; nil disables throttling.
	RateLimiter *middleware.RateLimiter
	Log         logrus.FieldLogger
}

// NewRouter builds the HTTP router for the console gateway
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	purchases := handlers.NewPurchaseHandler(d.Purchases, d.Log)
	vouchers := handlers.NewVoucherHandler(d.Vouchers, d.Log)
	reports := handlers.NewReportHandler(d.Lists, d.Settings, d.Dashboard, d.Audit, d.Log)

	r.Route("/api", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Handler)
		}

		r.Get("/settings", reports.Settings)
		r.Get("/dashboard", reports.Dashboard)
		r.Get("/audit", reports.Audit)
		r.Get("/lists/{screen}", reports.List)
		r.Get("/members/lookup", purchases.LookupMember)

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/preview", purchases.Preview)
			r.Post("/", purchases.Submit)
		})

		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/preview", vouchers.Preview)
			r.Post("/", vouchers.Create)
			r.Post("/{id}/approve", vouchers.Approve)
			r.Post("/{id}/reject", vouchers.Reject)
		})
	})

	r.Handle("/metrics", metrics.Handler())

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
