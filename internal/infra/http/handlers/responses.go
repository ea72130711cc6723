package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/corecrm/crm-sync/internal/infra/http/middleware"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
	"github.com/corecrm/crm-sync/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError traduz a taxonomia de erros do usecase para HTTP:
// validação barra no cliente (422), entrada malformada 400, sessão
// ausente 401, falha upstream 502.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, crmapi.ErrNoSession) {
		writeErrorResponse(w, http.StatusUnauthorized, "reauth_required", "Sessão expirada ou ausente. Faça login novamente.")
		return
	}

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == usecase.CodeValidation {
			status = http.StatusUnprocessableEntity
		}
		writeErrorResponse(w, status, domainErr.Code, domainErr.Message)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		middleware.RecordIntegrationError("crm")
		writeErrorResponse(w, http.StatusBadGateway, techErr.Code, techErr.Message)
		return
	}

	middleware.RecordIntegrationError("crm")
	writeErrorResponse(w, http.StatusBadGateway, usecase.CodeUpstream, err.Error())
}

func sessionFromRequest(r *http.Request) crmapi.Session {
	return crmapi.Session{Token: middleware.BearerToken(r)}
}
