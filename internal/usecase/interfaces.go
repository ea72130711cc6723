package usecase

import (
	"context"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

// CRMGateway é o contrato contra a API upstream do CRM. A sessão vai
// explícita em toda chamada: o token vem do front, request a request.
type CRMGateway interface {
	FindContactsByLead(ctx context.Context, sess crmapi.Session, leadID string) ([]entity.Contact, error)
	UpdateContact(ctx context.Context, sess crmapi.Session, id string, input crmapi.UpdateContactInput) (*entity.Contact, error)
	GetLead(ctx context.Context, sess crmapi.Session, id string) (*entity.Lead, error)
	UpdateLead(ctx context.Context, sess crmapi.Session, id string, input crmapi.UpdateLeadInput) (*entity.Lead, error)
	GetDeletionInfo(ctx context.Context, sess crmapi.Session, entityType, id string) (*entity.DeletionCheck, error)
	SoftDelete(ctx context.Context, sess crmapi.Session, entityType, id string, input crmapi.SoftDeleteInput) error
	GetDealStages(ctx context.Context, sess crmapi.Session) ([]string, error)
}

// Tipos de entidade que aceitam o fluxo de soft-delete
const (
	EntityLeads    = "leads"
	EntityContacts = "contacts"
	EntityDeals    = "deals"
)

func IsValidEntityType(entityType string) bool {
	switch entityType {
	case EntityLeads, EntityContacts, EntityDeals:
		return true
	}
	return false
}

// SyncOutcome é o resultado de uma propagação individual. Synced=false
// com Detail preenchido é um fim de fluxo legítimo (par inexistente),
// não um erro.
type SyncOutcome struct {
	Synced   bool   `json:"synced"`
	TargetID string `json:"target_id,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Direções aceitas pelo coordenador de batch
const (
	DirectionLeadToContact = "lead_to_contact"
	DirectionContactToLead = "contact_to_lead"
)

type BatchSyncInput struct {
	Direction string           `json:"direction"`
	Leads     []entity.Lead    `json:"leads,omitempty"`
	Contacts  []entity.Contact `json:"contacts,omitempty"`
}

// BatchResult é alinhado por índice com a lista de entrada
type BatchResult struct {
	Index   int          `json:"index"`
	OK      bool         `json:"ok"`
	Outcome *SyncOutcome `json:"outcome,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type BatchSummary struct {
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Results    []BatchResult `json:"results"`
}

type DeleteRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes,omitempty"`
}

type DeleteOutcome struct {
	State     FlowState             `json:"state"`
	Committed bool                  `json:"committed"`
	Check     *entity.DeletionCheck `json:"check,omitempty"`
	Message   string                `json:"message,omitempty"`
}
