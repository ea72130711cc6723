package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/corecrm/crm-sync/internal/entity"
)

// BatchSyncPayload é o job que viaja pela fila. O token da sessão vai
// junto: o worker não tem request HTTP de onde tirar credencial.
type BatchSyncPayload struct {
	JobID     string `json:"job_id"`
	Direction string `json:"direction"`
	Token     string `json:"token"`
	Origin    string `json:"origin"` // API, ADMIN, IMPORT

	Leads    []entity.Lead    `json:"leads,omitempty"`
	Contacts []entity.Contact `json:"contacts,omitempty"`

	// Email opcional para o relatório de falhas
	ReportTo string `json:"report_to,omitempty"`
}

type BatchProducerInterface interface {
	PublishBatchSync(ctx context.Context, payload BatchSyncPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishBatchSync(ctx context.Context, payload BatchSyncPayload) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.crmsync
		RoutingKey,   // k.batch_sync
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
