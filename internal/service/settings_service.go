package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/cache"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

const settingsKey = "settings"

type SettingsService struct {
	backend SettingsBackend
	loader  *cache.Loader
	log     logrus.FieldLogger
}

func NewSettingsService(b SettingsBackend, loader *cache.Loader, log logrus.FieldLogger) *SettingsService {
	return &SettingsService{backend: b, loader: loader, log: log}
}

// Get returns the maxreward settings. A settings payload without a maxreward
// block is logged and treated as defaults (rate 1); it is not cached.
func (s *SettingsService) Get(ctx context.Context) (models.MaxRewardSettings, error) {
	settings, err := cache.Fetch(ctx, s.loader, settingsKey, s.backend.Settings)
	if errors.Is(err, normalize.ErrMalformedResponse) {
		s.log.WithError(err).Warn("settings payload has no maxreward block, using defaults")
		return settings, nil
	}
	return settings, err
}

// Rate is the points-per-currency-unit every calculator uses.
func (s *SettingsService) Rate(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return settings.PointsPerCurrencyUnit(), nil
}

func (s *SettingsService) Invalidate(ctx context.Context) {
	s.loader.Invalidate(ctx, settingsKey)
}
