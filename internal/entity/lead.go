package entity

import (
	"errors"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

var ErrLeadNotFound = errors.New("lead não encontrado")

// Estágios fixos do Lead (a API upstream não permite customizar esses).
const (
	LeadStageNew       = "New"
	LeadStageContacted = "Contacted"
	LeadStageQualified = "Qualified"
	LeadStageWon       = "Won"
	LeadStageLost      = "Lost"
)

const BudgetNotSpecified = "not-specified"

// Entidade: Lead (cliente em prospecção, ainda não convertido)
type Lead struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"` // opcional na configuração atual
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// Campos exclusivos do Lead. O sync NUNCA sobrescreve esses dois.
	LeadSource string `json:"leadSource"`
	LeadStage  string `json:"leadStage"`

	Company        string `json:"company,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	BudgetTimeline string `json:"budgetTimeline,omitempty"`
	Notes          string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Lead) Validate() error {
	if l.ID == "" {
		return errors.New("lead id is required")
	}
	if l.LastName == "" {
		return errors.New("last name is required")
	}
	return nil
}

func IsValidLeadStage(stage string) bool {
	switch stage {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}
