package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/backend"
	"github.com/Cheertaboi/maxreward-console/internal/concurrency"
	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
)

const dashboardWorkers = 4

type Dashboard struct {
	Totals   map[listquery.Screen]int    `json:"totals"`
	Errors   map[listquery.Screen]string `json:"errors,omitempty"`
	Settings models.MaxRewardSettings    `json:"settings"`
}

type DashboardService struct {
	reports  *ReportService
	settings *SettingsService
	log      logrus.FieldLogger
}

func NewDashboardService(reports *ReportService, settings *SettingsService, log logrus.FieldLogger) *DashboardService {
	return &DashboardService{reports: reports, settings: settings, log: log}
}

// Summary loads the record count of every list screen concurrently. A screen
// that fails is reported in Errors; the others still show.
func (s *DashboardService) Summary(ctx context.Context) (Dashboard, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	screens := listquery.Screens()
	out := Dashboard{
		Totals:   make(map[listquery.Screen]int, len(screens)),
		Errors:   make(map[listquery.Screen]string),
		Settings: settings,
	}
	var mu sync.Mutex

	concurrency.SimpleWorkerPool(ctx, dashboardWorkers, len(screens), func(ctx context.Context, i int) {
		screen := screens[i]
		page, err := s.reports.List(ctx, listquery.New(screen).WithPerPage(1))
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			s.log.WithError(err).WithField("screen", screen).Warn("dashboard total failed")
			out.Errors[screen] = backend.MessageOf(err)
			return
		}
		out.Totals[screen] = page.Meta.Total
	})

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
