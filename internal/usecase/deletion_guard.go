package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

// FlowState espelha um a um os passos do modal de exclusão do front:
// abriu → bloqueado OU escolhendo motivo → revisão → excluído.
type FlowState string

const (
	FlowStateInitial     FlowState = "initial"
	FlowStateBlocked     FlowState = "blocked"
	FlowStateReasonEntry FlowState = "reason_entry"
	FlowStateConfirm     FlowState = "confirm"
	FlowStateCommitted   FlowState = "committed"
)

// Motivos de exclusão aceitos, por tipo de entidade. O motivo é
// obrigatório; as notas são livres e opcionais.
var deleteReasonsByEntity = map[string][]string{
	EntityLeads:    {"Duplicate", "Test Data", "Invalid", "Not Interested", "Other"},
	EntityContacts: {"Duplicate", "Test Data", "Invalid", "Request", "Other"},
	EntityDeals:    {"Duplicate", "Test Data", "Invalid", "Cancelled", "Other"},
}

func DeleteReasonsFor(entityType string) []string {
	return deleteReasonsByEntity[entityType]
}

func IsValidDeleteReason(entityType, reason string) bool {
	for _, r := range deleteReasonsByEntity[entityType] {
		if r == reason {
			return true
		}
	}
	return false
}

type DeletionGuardUseCase struct {
	Gateway CRMGateway
	Audit   entity.AuditRepositoryInterface // opcional, pode ser nil
}

func NewDeletionGuardUseCase(gateway CRMGateway, audit entity.AuditRepositoryInterface) *DeletionGuardUseCase {
	return &DeletionGuardUseCase{
		Gateway: gateway,
		Audit:   audit,
	}
}

// Check busca as dependências do registro. Se o endpoint de delete-info
// falhar (ambiente onde ainda não foi publicado), cai no otimista
// "pode deletar, sem dependências". Disponibilidade acima de bloquear
// todo delete do sistema.
func (uc *DeletionGuardUseCase) Check(ctx context.Context, sess crmapi.Session, entityType, id string) *entity.DeletionCheck {
	check, err := uc.Gateway.GetDeletionInfo(ctx, sess, entityType, id)
	if err != nil {
		log.Printf("⚠️ Guard: delete-info de %s/%s indisponível (%v), assumindo liberado", entityType, id, err)
		return entity.OptimisticDeletionCheck()
	}
	return check
}

// DeletionFlow é uma tentativa de exclusão. Cada instância percorre a
// máquina de estados uma única vez; do estado Blocked não existe
// caminho para o delete.
type DeletionFlow struct {
	guard *DeletionGuardUseCase
	sess  crmapi.Session

	EntityType string
	EntityID   string
	State      FlowState
	Check      *entity.DeletionCheck
	Reason     string
	Notes      string
}

// NewFlow valida o tipo de entidade antes de qualquer chamada de rede
func (uc *DeletionGuardUseCase) NewFlow(sess crmapi.Session, entityType, id string) (*DeletionFlow, error) {
	if !IsValidEntityType(entityType) {
		return nil, &DomainError{Code: CodeInvalidInput, Message: fmt.Sprintf("tipo de entidade inválido: %q", entityType)}
	}
	if id == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "entity id is required"}
	}
	return &DeletionFlow{
		guard:      uc,
		sess:       sess,
		EntityType: entityType,
		EntityID:   id,
		State:      FlowStateInitial,
	}, nil
}

// Start consulta as dependências e decide: Blocked ou ReasonEntry
func (f *DeletionFlow) Start(ctx context.Context) FlowState {
	f.Check = f.guard.Check(ctx, f.sess, f.EntityType, f.EntityID)

	if f.Check.IsBlocked() {
		f.State = FlowStateBlocked
	} else {
		f.State = FlowStateReasonEntry
	}
	return f.State
}

// EnterReason registra o motivo escolhido. Motivo vazio ou fora da
// lista é barrado aqui, sem tocar a rede.
func (f *DeletionFlow) EnterReason(reason, notes string) error {
	if f.State != FlowStateReasonEntry {
		return &DomainError{Code: CodeInvalidInput, Message: fmt.Sprintf("fluxo em %q não aceita motivo", f.State)}
	}
	if !IsValidDeleteReason(f.EntityType, reason) {
		return &DomainError{Code: CodeValidation, Message: fmt.Sprintf("motivo de exclusão inválido para %s: %q", f.EntityType, reason)}
	}

	f.Reason = reason
	f.Notes = notes
	f.State = FlowStateConfirm
	return nil
}

// Confirm executa o soft-delete. Em falha o fluxo permanece em Confirm
// para o usuário tentar de novo; o erro vira alerta, nunca estoura.
func (f *DeletionFlow) Confirm(ctx context.Context) error {
	if f.State != FlowStateConfirm {
		return &DomainError{Code: CodeInvalidInput, Message: fmt.Sprintf("fluxo em %q não pode confirmar", f.State)}
	}

	err := f.guard.Gateway.SoftDelete(ctx, f.sess, f.EntityType, f.EntityID, crmapi.SoftDeleteInput{
		Reason: f.Reason,
		Notes:  f.Notes,
	})
	if err != nil {
		f.guard.record(ctx, f.EntityType, f.EntityID, f.Reason, "failed")
		return &TechnicalError{Code: CodeUpstream, Message: "soft-delete falhou: " + err.Error()}
	}

	f.State = FlowStateCommitted
	log.Printf("🗑️ Guard: %s/%s marcado como excluído (motivo: %s)", f.EntityType, f.EntityID, f.Reason)
	f.guard.record(ctx, f.EntityType, f.EntityID, f.Reason, "committed")
	return nil
}

// Execute percorre o fluxo inteiro numa tacada, para o endpoint
// server-side. Bloqueio por dependência NÃO é erro: volta como outcome
// informativo com o check anexado.
func (uc *DeletionGuardUseCase) Execute(ctx context.Context, sess crmapi.Session, req DeleteRequest) (*DeleteOutcome, error) {
	flow, err := uc.NewFlow(sess, req.EntityType, req.EntityID)
	if err != nil {
		return nil, err
	}

	// Motivo é validado antes de qualquer chamada de rede
	if !IsValidDeleteReason(req.EntityType, req.Reason) {
		return nil, &DomainError{Code: CodeValidation, Message: fmt.Sprintf("motivo de exclusão inválido para %s: %q", req.EntityType, req.Reason)}
	}

	if flow.Start(ctx) == FlowStateBlocked {
		uc.record(ctx, req.EntityType, req.EntityID, req.Reason, "blocked")
		return &DeleteOutcome{
			State:   FlowStateBlocked,
			Check:   flow.Check,
			Message: "exclusão bloqueada por dependências",
		}, nil
	}

	if err := flow.EnterReason(req.Reason, req.Notes); err != nil {
		return nil, err
	}
	if err := flow.Confirm(ctx); err != nil {
		return nil, err
	}

	return &DeleteOutcome{
		State:     FlowStateCommitted,
		Committed: true,
		Check:     flow.Check,
	}, nil
}

func (uc *DeletionGuardUseCase) record(ctx context.Context, entityType, entityID, reason, outcome string) {
	if uc.Audit == nil {
		return
	}
	entry := entity.NewAuditEntry(entityType, entityID, entity.AuditActionSoftDelete, outcome)
	entry.Reason = reason
	if err := uc.Audit.Insert(ctx, entry); err != nil {
		log.Printf("⚠️ Audit: falha ao registrar exclusão de %s/%s: %v", entityType, entityID, err)
	}
}
