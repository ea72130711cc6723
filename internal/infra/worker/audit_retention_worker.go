package worker

import (
	"context"
	"log"
	"time"

	"github.com/corecrm/crm-sync/internal/entity"
)

// AuditRetentionWorker apaga periodicamente registros de auditoria fora
// da janela de retenção. A trilha é operacional, não histórico de CRM,
// não precisa viver para sempre.
type AuditRetentionWorker struct {
	repo            entity.AuditRepositoryInterface
	retentionWindow time.Duration
	tickInterval    time.Duration
}

func NewAuditRetentionWorker(repo entity.AuditRepositoryInterface, retention time.Duration) *AuditRetentionWorker {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour // 90 dias por padrão
	}
	return &AuditRetentionWorker{
		repo:            repo,
		retentionWindow: retention,
		tickInterval:    1 * time.Hour,
	}
}

func (w *AuditRetentionWorker) Start(ctx context.Context) {
	log.Printf("🕒 Audit Retention Worker iniciado (janela: %s)", w.retentionWindow)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Audit Retention Worker encerrado")
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *AuditRetentionWorker) purge(ctx context.Context) {
	deleted, err := w.repo.DeleteOlderThan(ctx, w.retentionWindow)
	if err != nil {
		log.Printf("❌ Erro ao limpar auditoria antiga: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("🧹 Auditoria: %d registros antigos removidos", deleted)
	}
}
