package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

// BatchSync dispara um sync por registro, todos concorrentes, e espera
// todos assentarem. Falha individual nunca aborta o lote: cada posição
// de Results corresponde índice a índice à lista de entrada. Re-rodar o
// mesmo lote é seguro: cada sync é sobrescrita integral por id.
func (uc *SyncUseCase) BatchSync(ctx context.Context, sess crmapi.Session, input BatchSyncInput) (*BatchSummary, error) {
	if validationErrors := ValidateBatchSyncInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: CodeValidation, Message: errMsg}
	}

	total := len(input.Leads)
	if input.Direction == DirectionContactToLead {
		total = len(input.Contacts)
	}

	results := make([]BatchResult, total)
	var wg sync.WaitGroup

	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			var outcome *SyncOutcome
			var err error

			switch input.Direction {
			case DirectionLeadToContact:
				lead := input.Leads[idx]
				outcome, err = uc.SyncLeadToContact(ctx, sess, &lead)
			case DirectionContactToLead:
				contact := input.Contacts[idx]
				outcome, err = uc.SyncContactToLead(ctx, sess, &contact)
			}

			if err != nil {
				results[idx] = BatchResult{Index: idx, OK: false, Error: err.Error()}
				return
			}
			results[idx] = BatchResult{Index: idx, OK: true, Outcome: outcome}
		}(i)
	}

	wg.Wait()

	summary := &BatchSummary{Results: results}
	for _, r := range results {
		if r.OK {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	log.Printf("📦 Batch sync (%s): %d ok, %d falhas de %d registros", input.Direction, summary.Successful, summary.Failed, total)

	if uc.Audit != nil {
		entry := entity.NewAuditEntry("batch", "-", entity.AuditActionBatchSync,
			fmt.Sprintf("successful=%d failed=%d", summary.Successful, summary.Failed))
		entry.Direction = input.Direction
		if err := uc.Audit.Insert(ctx, entry); err != nil {
			log.Printf("⚠️ Audit: falha ao registrar batch sync: %v", err)
		}
	}

	return summary, nil
}
