package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ações registradas no audit log do gateway
const (
	AuditActionSync       = "SYNC"
	AuditActionBatchSync  = "BATCH_SYNC"
	AuditActionSoftDelete = "SOFT_DELETE"
)

// AuditEntry é o registro operacional do gateway (quem sincronizou/apagou
// o quê). O dado de CRM em si continua morando na API upstream.
type AuditEntry struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Direction  string    `json:"direction,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuditEntry cria um registro com ID e timestamp preenchidos
func NewAuditEntry(entityType, entityID, action, outcome string) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Outcome:    outcome,
		CreatedAt:  time.Now(),
	}
}

// AuditRepositoryInterface define os métodos do repositório de auditoria
type AuditRepositoryInterface interface {
	Insert(ctx context.Context, entry *AuditEntry) error
	DeleteOlderThan(ctx context.Context, window time.Duration) (int64, error)
}
