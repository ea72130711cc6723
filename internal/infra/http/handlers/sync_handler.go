package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/http/middleware"
	"github.com/corecrm/crm-sync/internal/infra/queue"
	"github.com/corecrm/crm-sync/internal/usecase"
)

type SyncHandler struct {
	Sync     *usecase.SyncUseCase
	Producer queue.BatchProducerInterface // opcional, pode ser nil
}

func NewSyncHandler(sync *usecase.SyncUseCase, producer queue.BatchProducerInterface) *SyncHandler {
	return &SyncHandler{
		Sync:     sync,
		Producer: producer,
	}
}

// O front manda o registro editado e, opcionalmente, o snapshot anterior.
// Com o snapshot dá pra cortar a propagação redundante antes de qualquer
// chamada à API upstream.
type LeadSyncRequest struct {
	Lead     entity.Lead  `json:"lead"`
	Previous *entity.Lead `json:"previous,omitempty"`
}

type ContactSyncRequest struct {
	Contact  entity.Contact  `json:"contact"`
	Previous *entity.Contact `json:"previous,omitempty"`
}

// HandleLeadToContact (POST /sync/lead-to-contact)
func (h *SyncHandler) HandleLeadToContact(w http.ResponseWriter, r *http.Request) {
	var req LeadSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	if req.Previous != nil && !usecase.SharedFieldsChanged(usecase.LeadSharedFields(req.Previous), usecase.LeadSharedFields(&req.Lead)) {
		middleware.RecordSyncOperation(usecase.DirectionLeadToContact, "skipped")
		writeJSON(w, http.StatusOK, usecase.SyncOutcome{Synced: false, Detail: "no relevant changes"})
		return
	}

	outcome, err := h.Sync.SyncLeadToContact(r.Context(), sessionFromRequest(r), &req.Lead)
	if err != nil {
		middleware.RecordSyncOperation(usecase.DirectionLeadToContact, "error")
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSyncOperation(usecase.DirectionLeadToContact, outcomeLabel(outcome))
	writeJSON(w, http.StatusOK, outcome)
}

// HandleContactToLead (POST /sync/contact-to-lead)
func (h *SyncHandler) HandleContactToLead(w http.ResponseWriter, r *http.Request) {
	var req ContactSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	if req.Previous != nil && !usecase.SharedFieldsChanged(usecase.ContactSharedFields(req.Previous), usecase.ContactSharedFields(&req.Contact)) {
		middleware.RecordSyncOperation(usecase.DirectionContactToLead, "skipped")
		writeJSON(w, http.StatusOK, usecase.SyncOutcome{Synced: false, Detail: "no relevant changes"})
		return
	}

	outcome, err := h.Sync.SyncContactToLead(r.Context(), sessionFromRequest(r), &req.Contact)
	if err != nil {
		middleware.RecordSyncOperation(usecase.DirectionContactToLead, "error")
		writeUseCaseError(w, err)
		return
	}

	// Contato sem lead: o usecase devolve nil sem tocar a rede
	if outcome == nil {
		outcome = &usecase.SyncOutcome{Synced: false, Detail: "contact not linked to a lead"}
	}

	middleware.RecordSyncOperation(usecase.DirectionContactToLead, outcomeLabel(outcome))
	writeJSON(w, http.StatusOK, outcome)
}

// HandleBatch (POST /sync/batch): síncrono, devolve o agregado
func (h *SyncHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var input usecase.BatchSyncInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	summary, err := h.Sync.BatchSync(r.Context(), sessionFromRequest(r), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleBatchEnqueue (POST /sync/batch/enqueue): publica o job na fila
// e responde 202. O worker executa e manda relatório se houver falha.
func (h *SyncHandler) HandleBatchEnqueue(w http.ResponseWriter, r *http.Request) {
	if h.Producer == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Fila de batch não configurada")
		return
	}

	var req struct {
		usecase.BatchSyncInput
		ReportTo string `json:"report_to,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	if validationErrors := usecase.ValidateBatchSyncInput(req.BatchSyncInput); len(validationErrors) > 0 {
		writeErrorResponse(w, http.StatusUnprocessableEntity, usecase.CodeValidation, validationErrors[0].Error())
		return
	}

	payload := queue.BatchSyncPayload{
		JobID:     uuid.New().String(),
		Direction: req.Direction,
		Token:     middleware.BearerToken(r),
		Origin:    "API",
		Leads:     req.Leads,
		Contacts:  req.Contacts,
		ReportTo:  req.ReportTo,
	}

	if err := h.Producer.PublishBatchSync(r.Context(), payload); err != nil {
		middleware.RecordIntegrationError("rabbitmq")
		writeErrorResponse(w, http.StatusInternalServerError, "QUEUE_ERROR", "Falha ao enfileirar o job: "+err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": payload.JobID})
}

func outcomeLabel(outcome *usecase.SyncOutcome) string {
	if outcome != nil && outcome.Synced {
		return "synced"
	}
	return "noop"
}
