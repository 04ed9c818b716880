package models

import (
	"encoding/json"
	"time"
)

const (
	AuditVoucherCreated    = "voucher_created"
	AuditVoucherApproved   = "voucher_approved"
	AuditVoucherRejected   = "voucher_rejected"
	AuditPurchaseSubmitted = "purchase_submitted"
)

type AuditEntry struct {
	ID        string          `db:"id" json:"id"`
	Action    string          `db:"action" json:"action"`
	SubjectID string          `db:"subject_id" json:"subject_id"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
