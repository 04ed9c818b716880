package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/cache"
	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

// ReportService serves every list screen through the query cache.
type ReportService struct {
	backend ListBackend
	loader  *cache.Loader
	log     logrus.FieldLogger
}

func NewReportService(b ListBackend, loader *cache.Loader, log logrus.FieldLogger) *ReportService {
	return &ReportService{backend: b, loader: loader, log: log}
}

// List returns one page for q. A response of unknown shape degrades to an
// empty page: it is logged, not cached, and not reported as an error.
func (s *ReportService) List(ctx context.Context, q listquery.Query) (models.Page, error) {
	page, err := cache.Fetch(ctx, s.loader, q.Key(), func(ctx context.Context) (models.Page, error) {
		return s.backend.List(ctx, q)
	})
	if errors.Is(err, normalize.ErrMalformedResponse) {
		s.log.WithError(err).WithField("screen", q.Screen).Warn("malformed list response")
		return models.EmptyPage(), nil
	}
	if err != nil {
		return models.EmptyPage(), err
	}
	if page.Items == nil {
		page.Items = models.EmptyPage().Items
	}
	return page, nil
}
