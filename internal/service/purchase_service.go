package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/cache"
	"github.com/Cheertaboi/maxreward-console/internal/calc"
	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
)

type PurchaseService struct {
	backend  PurchaseBackend
	settings *SettingsService
	loader   *cache.Loader
	audit    AuditRecorder
	log      logrus.FieldLogger
}

func NewPurchaseService(b PurchaseBackend, settings *SettingsService, loader *cache.Loader, audit AuditRecorder, log logrus.FieldLogger) *PurchaseService {
	return &PurchaseService{backend: b, settings: settings, loader: loader, audit: audit, log: log}
}

type PurchaseResult struct {
	Draft       models.PurchaseDraft `json:"draft"`
	Transaction json.RawMessage      `json:"transaction,omitempty"`
}

// Preview computes the draft for the current input using the configured rate.
func (s *PurchaseService) Preview(ctx context.Context, in models.PurchaseInput) (models.PurchaseDraft, error) {
	rate, err := s.settings.Rate(ctx)
	if err != nil {
		return models.PurchaseDraft{}, fmt.Errorf("load rate: %w", err)
	}
	return calc.NewPurchaseDraft(in, rate), nil
}

// FindMember resolves the member the purchase is for.
func (s *PurchaseService) FindMember(ctx context.Context, term string) (models.Member, error) {
	if strings.TrimSpace(term) == "" {
		return models.Member{}, invalid("search", "member_search_required")
	}
	return s.backend.FindMember(ctx, term)
}

// Submit sends a purchase in two steps: the backend first verifies that the
// member can spend the clamped redeem points, and only then is the purchase
// submitted. A failed verification submits nothing.
func (s *PurchaseService) Submit(ctx context.Context, in models.PurchaseInput) (PurchaseResult, error) {
	in.MemberID = strings.TrimSpace(in.MemberID)
	in.MerchantID = strings.TrimSpace(in.MerchantID)
	if in.MemberID == "" {
		return PurchaseResult{}, invalid("member_id", "member_required")
	}
	if in.MerchantID == "" {
		return PurchaseResult{}, invalid("merchant_id", "merchant_required")
	}
	if !in.TransactionAmount.IsPositive() {
		return PurchaseResult{}, invalid("transaction_amount", "transaction_amount_required")
	}

	draft, err := s.Preview(ctx, in)
	if err != nil {
		return PurchaseResult{}, err
	}

	log := s.log.WithFields(logrus.Fields{"member_id": in.MemberID, "merchant_id": in.MerchantID})
	if draft.RedeemPointsClamped.IsPositive() {
		if err := s.backend.VerifyRedeem(ctx, in.MemberID, draft.RedeemPointsClamped); err != nil {
			log.WithError(err).Info("redeem verification failed")
			return PurchaseResult{Draft: draft}, fmt.Errorf("verify redeem: %w", err)
		}
	}

	tx, err := s.backend.SubmitPurchase(ctx, in.MemberID, draft)
	if err != nil {
		return PurchaseResult{Draft: draft}, fmt.Errorf("submit purchase: %w", err)
	}

	if _, err := s.audit.Record(ctx, models.AuditPurchaseSubmitted, in.MemberID, draft); err != nil {
		log.WithError(err).Warn("audit record failed")
	}
	s.loader.Invalidate(ctx, invalidatePrefix(listquery.Transactions))
	s.loader.Invalidate(ctx, invalidatePrefix(listquery.Members))
	log.WithField("redeem_points", draft.RedeemPointsClamped.String()).Info("purchase submitted")

	return PurchaseResult{Draft: draft, Transaction: tx}, nil
}
