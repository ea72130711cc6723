package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/corecrm/crm-sync/internal/entity"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *entity.AuditEntry) error {
	query := `
		INSERT INTO sync_audit (id, entity_type, entity_id, action, direction, reason, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.Direction),
		nullString(entry.Reason),
		entry.Outcome,
		entry.CreatedAt,
	)

	return err
}

// DeleteOlderThan remove registros fora da janela de retenção e devolve
// quantos foram apagados
func (r *AuditRepository) DeleteOlderThan(ctx context.Context, window time.Duration) (int64, error) {
	query := `DELETE FROM sync_audit WHERE created_at < $1`

	result, err := r.DB.ExecContext(ctx, query, time.Now().Add(-window))
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
