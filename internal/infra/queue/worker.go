package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
	"github.com/corecrm/crm-sync/internal/usecase"
)

// BatchSyncExecutor define o contrato do coordenador de batch
type BatchSyncExecutor interface {
	BatchSync(ctx context.Context, sess crmapi.Session, input usecase.BatchSyncInput) (*usecase.BatchSummary, error)
}

// ReportSender manda o resumo do lote quando houve falhas
type ReportSender interface {
	SendBatchReport(to, jobID, direction string, successful, failed int) error
}

type Worker struct {
	Channel  *amqp.Channel
	Executor BatchSyncExecutor
	Reporter ReportSender // opcional, pode ser nil
}

func NewWorker(ch *amqp.Channel, executor BatchSyncExecutor, reporter ReportSender) *Worker {
	return &Worker{
		Channel:  ch,
		Executor: executor,
		Reporter: reporter,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Job de batch sync recebido do RabbitMQ")

			var payload BatchSyncPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processando job %s (direção: %s)", payload.JobID, payload.Direction)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no job %s: %s", payload.JobID, err)
				// Validação nunca vai passar em retry; manda pra DLQ direto.
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Job %s concluído.", payload.JobID)
				d.Ack(false) // Confirma o sucesso e remove da fila
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload BatchSyncPayload) error {
	sess := crmapi.Session{Token: payload.Token}

	input := usecase.BatchSyncInput{
		Direction: payload.Direction,
		Leads:     payload.Leads,
		Contacts:  payload.Contacts,
	}

	summary, err := w.Executor.BatchSync(ctx, sess, input)
	if err != nil {
		return err
	}

	// Falha individual não derruba o job: o lote assentou, o resumo conta
	// quem falhou. Relatório vai por email quando configurado.
	if summary.Failed > 0 {
		log.Printf("⚠️ [WORKER] Job %s terminou com %d falhas de %d registros", payload.JobID, summary.Failed, len(summary.Results))
		if w.Reporter != nil && payload.ReportTo != "" {
			go func() {
				if err := w.Reporter.SendBatchReport(payload.ReportTo, payload.JobID, payload.Direction, summary.Successful, summary.Failed); err != nil {
					log.Printf("⚠️ [WORKER] Falha ao enviar relatório do job %s: %v", payload.JobID, err)
				}
			}()
		}
	}

	return nil
}
