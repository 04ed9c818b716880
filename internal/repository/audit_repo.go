package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

const maxRecent = 200

// AuditRepo records admin actions that were sent to the backend. Drafts are
// never stored here, only the submitted result.
type AuditRepo struct {
	db *sqlx.DB
}

func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Record(ctx context.Context, action, subjectID string, payload interface{}) (models.AuditEntry, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("encode audit payload: %w", err)
	}
	e := models.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		SubjectID: subjectID,
		Payload:   b,
	}

	query := `
		INSERT INTO admin_audit_log (id, action, subject_id, payload, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, e.ID, e.Action, e.SubjectID, []byte(e.Payload)).Scan(&e.CreatedAt); err != nil {
		return models.AuditEntry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	return e, nil
}

// Recent returns the newest entries first, optionally narrowed to one action.
func (r *AuditRepo) Recent(ctx context.Context, action string, limit int) ([]models.AuditEntry, error) {
	if limit < 1 || limit > maxRecent {
		limit = maxRecent
	}
	query := `
		SELECT id, action, subject_id, payload, created_at
		FROM admin_audit_log
		WHERE ($1 = '' OR action = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	entries := []models.AuditEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, action, limit); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
