package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

type SyncUseCase struct {
	Gateway CRMGateway
	Audit   entity.AuditRepositoryInterface // opcional, pode ser nil
}

func NewSyncUseCase(gateway CRMGateway, audit entity.AuditRepositoryInterface) *SyncUseCase {
	return &SyncUseCase{
		Gateway: gateway,
		Audit:   audit,
	}
}

// SyncLeadToContact propaga os campos espelhados do Lead para o Contact
// pareado (aquele cujo leadId aponta para o Lead). Lead sem Contact é um
// fim de fluxo normal. Falha de rede/API sobe para o chamador; não há
// retry automático: re-emitir a escrita por conta própria arriscaria
// efeito duplicado em falha parcial.
func (uc *SyncUseCase) SyncLeadToContact(ctx context.Context, sess crmapi.Session, lead *entity.Lead) (*SyncOutcome, error) {
	if lead == nil || lead.ID == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "lead id is required"}
	}

	contacts, err := uc.Gateway.FindContactsByLead(ctx, sess, lead.ID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contato do lead %s: %w", lead.ID, err)
	}

	if len(contacts) == 0 {
		uc.record(ctx, EntityLeads, lead.ID, DirectionLeadToContact, "no associated contact")
		return &SyncOutcome{Synced: false, Detail: "no associated contact"}, nil
	}

	target := pickContact(contacts)
	if len(contacts) > 1 {
		log.Printf("⚠️ Sync: lead %s tem %d contatos associados, usando o mais recente (%s)", lead.ID, len(contacts), target.ID)
	}

	payload := crmapi.UpdateContactInput{
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		LeadID:    target.LeadID, // referência inalterada
	}

	updated, err := uc.Gateway.UpdateContact(ctx, sess, target.ID, payload)
	if err != nil {
		uc.record(ctx, EntityLeads, lead.ID, DirectionLeadToContact, "update failed")
		return nil, fmt.Errorf("falha ao atualizar contato %s: %w", target.ID, err)
	}

	log.Printf("🔄 Sync: lead %s → contato %s", lead.ID, updated.ID)
	uc.record(ctx, EntityLeads, lead.ID, DirectionLeadToContact, "synced")

	return &SyncOutcome{Synced: true, TargetID: updated.ID}, nil
}

// SyncContactToLead propaga os campos espelhados do Contact para o Lead
// de origem. Contato sem leadId não toca a rede e devolve nil: um
// contato avulso jamais cria ou anexa Lead implicitamente. LeadSource e
// LeadStage do Lead são preservados no payload: pertencem só ao Lead.
func (uc *SyncUseCase) SyncContactToLead(ctx context.Context, sess crmapi.Session, contact *entity.Contact) (*SyncOutcome, error) {
	if contact == nil || contact.ID == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "contact id is required"}
	}

	if !contact.HasLead() {
		return nil, nil
	}

	lead, err := uc.Gateway.GetLead(ctx, sess, *contact.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			uc.record(ctx, EntityContacts, contact.ID, DirectionContactToLead, "lead not found")
			return &SyncOutcome{Synced: false, Detail: "lead not found"}, nil
		}
		return nil, fmt.Errorf("falha ao buscar lead %s: %w", *contact.LeadID, err)
	}

	payload := crmapi.UpdateLeadInput{
		FirstName:  contact.FirstName,
		LastName:   contact.LastName,
		Email:      contact.Email,
		Phone:      contact.Phone,
		LeadSource: lead.LeadSource,
		LeadStage:  lead.LeadStage,
	}

	updated, err := uc.Gateway.UpdateLead(ctx, sess, lead.ID, payload)
	if err != nil {
		uc.record(ctx, EntityContacts, contact.ID, DirectionContactToLead, "update failed")
		return nil, fmt.Errorf("falha ao atualizar lead %s: %w", lead.ID, err)
	}

	log.Printf("🔄 Sync: contato %s → lead %s", contact.ID, updated.ID)
	uc.record(ctx, EntityContacts, contact.ID, DirectionContactToLead, "synced")

	return &SyncOutcome{Synced: true, TargetID: updated.ID}, nil
}

// pickContact resolve a ambiguidade de múltiplos contatos apontando para
// o mesmo lead: desempate determinístico pelo updatedAt mais recente.
func pickContact(contacts []entity.Contact) entity.Contact {
	target := contacts[0]
	for _, c := range contacts[1:] {
		if c.UpdatedAt.After(target.UpdatedAt) {
			target = c
		}
	}
	return target
}

// record grava a trilha de auditoria. Auditoria fora do ar não derruba
// o sync, só loga.
func (uc *SyncUseCase) record(ctx context.Context, entityType, entityID, direction, outcome string) {
	if uc.Audit == nil {
		return
	}
	entry := entity.NewAuditEntry(entityType, entityID, entity.AuditActionSync, outcome)
	entry.Direction = direction
	if err := uc.Audit.Insert(ctx, entry); err != nil {
		log.Printf("⚠️ Audit: falha ao registrar sync de %s/%s: %v", entityType, entityID, err)
	}
}
