// Package service orchestrates the console's screens: it wires the
// calculators to settings, validates drafts before anything is sent, talks to
// the backend and keeps the query cache and audit trail in step.
package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
)

// Backends used by services (interfaces to allow mocking)
type ListBackend interface {
	List(ctx context.Context, q listquery.Query) (models.Page, error)
}

type SettingsBackend interface {
	Settings(ctx context.Context) (models.MaxRewardSettings, error)
}

type PurchaseBackend interface {
	FindMember(ctx context.Context, term string) (models.Member, error)
	VerifyRedeem(ctx context.Context, memberID string, points decimal.Decimal) error
	SubmitPurchase(ctx context.Context, memberID string, d models.PurchaseDraft) (json.RawMessage, error)
}

type VoucherBackend interface {
	CreateVoucher(ctx context.Context, d models.VoucherDraft, docs []models.Attachment) (json.RawMessage, error)
	ApproveVoucher(ctx context.Context, id string) error
	RejectVoucher(ctx context.Context, id, reason string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, action, subjectID string, payload interface{}) (models.AuditEntry, error)
}

// NopAudit is used when no database is configured.
type NopAudit struct{}

func (NopAudit) Record(_ context.Context, action, subjectID string, _ interface{}) (models.AuditEntry, error) {
	return models.AuditEntry{Action: action, SubjectID: subjectID}, nil
}

// ValidationError is a draft that cannot be submitted. Nothing was sent to
// the backend.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return e.Code
}

func invalid(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}

func invalidatePrefix(s listquery.Screen) string {
	return string(s) + "?"
}
