package handlers

import (
	"log"
	"net/http"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/usecase"
)

type DealStagesHandler struct {
	Gateway usecase.CRMGateway
}

func NewDealStagesHandler(gateway usecase.CRMGateway) *DealStagesHandler {
	return &DealStagesHandler{Gateway: gateway}
}

// Handle (GET /deals/stages)
// Se o endpoint de estágios da API upstream estiver fora, devolve os
// seis padrões em vez de quebrar o pipeline do front.
func (h *DealStagesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stages, err := h.Gateway.GetDealStages(r.Context(), sessionFromRequest(r))
	if err != nil {
		log.Printf("⚠️ Stages: endpoint upstream indisponível (%v), usando padrões", err)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stages":   entity.DefaultDealStages(),
			"fallback": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stages":   stages,
		"fallback": false,
	})
}
