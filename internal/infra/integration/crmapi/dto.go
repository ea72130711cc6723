package crmapi

import "errors"

// ErrNoSession: nenhuma operação de escrita sai sem token. O handler
// converte isso num pedido de re-autenticação para o front.
var ErrNoSession = errors.New("sessão sem token de autenticação")

// Session carrega o bearer token obtido no login do usuário. É passado
// explicitamente em cada chamada: nada de mutar default global do client.
type Session struct {
	Token string
}

// UpdateContactInput: payload do PUT /api/contacts/{id}. Só os quatro
// campos espelhados + o leadId inalterado.
type UpdateContactInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	LeadID    *string `json:"leadId"`
}

// UpdateLeadInput: payload do PUT /api/leads/{id}. LeadSource/LeadStage
// vão preenchidos com os valores atuais do Lead para não serem zerados.
type UpdateLeadInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LeadSource string `json:"leadSource"`
	LeadStage  string `json:"leadStage"`
}

// SoftDeleteInput: corpo do POST /api/{entity}/{id}/soft-delete
type SoftDeleteInput struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}

type softDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Envelope do GET /api/{entity}/{id}/delete-info
type deletionInfoResponse struct {
	DeletionCheck deletionCheckPayload `json:"deletionCheck"`
}

type deletionCheckPayload struct {
	CanDelete    bool                `json:"canDelete"`
	Blockers     []string            `json:"blockers"`
	Warnings     []string            `json:"warnings"`
	Dependencies []dependencyPayload `json:"dependencies"`
}

type dependencyPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type dealStagesResponse struct {
	Stages []string `json:"stages"`
}
