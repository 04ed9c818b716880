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

type VoucherService struct {
	backend  VoucherBackend
	settings *SettingsService
	loader   *cache.Loader
	audit    AuditRecorder
	log      logrus.FieldLogger
}

func NewVoucherService(b VoucherBackend, settings *SettingsService, loader *cache.Loader, audit AuditRecorder, log logrus.FieldLogger) *VoucherService {
	return &VoucherService{backend: b, settings: settings, loader: loader, audit: audit, log: log}
}

type VoucherResult struct {
	Draft   models.VoucherDraft `json:"draft"`
	Voucher json.RawMessage     `json:"voucher,omitempty"`
}

// normalizeSelection applies the selection rules to a posted list: later
// duplicates of an id are dropped and quantities are at least 1.
func normalizeSelection(in []models.Denomination) []models.Denomination {
	sel := make([]models.Denomination, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, d := range in {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		sel = calc.Toggle(sel, d)
		sel = calc.SetQuantity(sel, d.ID, d.Quantity)
	}
	return sel
}

// Preview recomputes the totals of a draft at the configured rate.
func (s *VoucherService) Preview(ctx context.Context, d models.VoucherDraft) (models.VoucherDraft, error) {
	rate, err := s.settings.Rate(ctx)
	if err != nil {
		return models.VoucherDraft{}, fmt.Errorf("load rate: %w", err)
	}
	d.Denominations = normalizeSelection(d.Denominations)
	d.PointsPerCurrencyUnit = rate
	return calc.RecomputeVoucherDraft(d), nil
}

func validateVoucher(d models.VoucherDraft, docs []models.Attachment) error {
	switch {
	case strings.TrimSpace(d.MemberID) == "":
		return invalid("member_id", "member_required")
	case !d.VoucherType.Valid():
		return invalid("voucher_type", "invalid_voucher_type")
	case !d.PaymentMethod.Valid():
		return invalid("payment_method", "invalid_payment_method")
	case len(d.Denominations) == 0:
		return invalid("denominations", "denomination_required")
	case d.PaymentMethod == models.PaymentManual && len(docs) == 0:
		return invalid("manual_payment_docs", "payment_docs_required")
	}
	return nil
}

// Create validates and submits a voucher purchase for a member.
func (s *VoucherService) Create(ctx context.Context, d models.VoucherDraft, docs []models.Attachment) (VoucherResult, error) {
	d.MemberID = strings.TrimSpace(d.MemberID)
	if err := validateVoucher(d, docs); err != nil {
		return VoucherResult{}, err
	}
	draft, err := s.Preview(ctx, d)
	if err != nil {
		return VoucherResult{}, err
	}

	voucher, err := s.backend.CreateVoucher(ctx, draft, docs)
	if err != nil {
		return VoucherResult{Draft: draft}, fmt.Errorf("create voucher: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"member_id": draft.MemberID, "voucher_type": draft.VoucherType})
	if _, err := s.audit.Record(ctx, models.AuditVoucherCreated, draft.MemberID, draft); err != nil {
		log.WithError(err).Warn("audit record failed")
	}
	s.loader.Invalidate(ctx, invalidatePrefix(listquery.Vouchers))
	log.WithField("total_amount", draft.TotalAmount.String()).Info("voucher created")

	return VoucherResult{Draft: draft, Voucher: voucher}, nil
}

func (s *VoucherService) Approve(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("id", "voucher_required")
	}
	if err := s.backend.ApproveVoucher(ctx, id); err != nil {
		return fmt.Errorf("approve voucher: %w", err)
	}
	s.afterReview(ctx, models.AuditVoucherApproved, id, nil)
	return nil
}

// Reject declines a pending voucher. A reason is mandatory.
func (s *VoucherService) Reject(ctx context.Context, id, reason string) error {
	id = strings.TrimSpace(id)
	reason = strings.TrimSpace(reason)
	if id == "" {
		return invalid("id", "voucher_required")
	}
	if reason == "" {
		return invalid("reason", "reason_required")
	}
	if err := s.backend.RejectVoucher(ctx, id, reason); err != nil {
		return fmt.Errorf("reject voucher: %w", err)
	}
	s.afterReview(ctx, models.AuditVoucherRejected, id, map[string]string{"reason": reason})
	return nil
}

func (s *VoucherService) afterReview(ctx context.Context, action, id string, payload interface{}) {
	if _, err := s.audit.Record(ctx, action, id, payload); err != nil {
		s.log.WithError(err).WithField("voucher_id", id).Warn("audit record failed")
	}
	s.loader.Invalidate(ctx, invalidatePrefix(listquery.Vouchers))
	s.log.WithFields(logrus.Fields{"voucher_id": id, "action": action}).Info("voucher reviewed")
}
