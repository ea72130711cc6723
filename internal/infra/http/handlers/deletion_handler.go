package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corecrm/crm-sync/internal/infra/http/middleware"
	"github.com/corecrm/crm-sync/internal/usecase"
)

type DeletionHandler struct {
	Guard *usecase.DeletionGuardUseCase
}

func NewDeletionHandler(guard *usecase.DeletionGuardUseCase) *DeletionHandler {
	return &DeletionHandler{Guard: guard}
}

// HandleDeleteInfo (GET /{entity}/{id}/delete-info)
// O front abre o modal com isso: bloqueios, avisos e a lista de motivos
// válidos para o tipo.
func (h *DeletionHandler) HandleDeleteInfo(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")

	if !usecase.IsValidEntityType(entityType) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "tipo de entidade inválido: "+entityType)
		return
	}
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "ID is required")
		return
	}

	check := h.Guard.Check(r.Context(), sessionFromRequest(r), entityType, id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deletionCheck": check,
		"reasons":       usecase.DeleteReasonsFor(entityType),
	})
}

// HandleSoftDelete (POST /{entity}/{id}/soft-delete)
// Roda o fluxo completo do guard no servidor: re-checa dependências,
// valida o motivo e só então confirma. 409 quando bloqueado, 422 quando
// o motivo não passa.
func (h *DeletionHandler) HandleSoftDelete(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")

	var body struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	req := usecase.DeleteRequest{
		EntityType: entityType,
		EntityID:   id,
		Reason:     body.Reason,
		Notes:      body.Notes,
	}

	outcome, err := h.Guard.Execute(r.Context(), sessionFromRequest(r), req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	if outcome.State == usecase.FlowStateBlocked {
		middleware.RecordDeletionBlocked(entityType)
		writeJSON(w, http.StatusConflict, outcome)
		return
	}

	middleware.RecordDeletionCommitted(entityType)
	writeJSON(w, http.StatusOK, outcome)
}
