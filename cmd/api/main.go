package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/database"
	"github.com/corecrm/crm-sync/internal/infra/http/handlers"
	"github.com/corecrm/crm-sync/internal/infra/http/middleware"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
	"github.com/corecrm/crm-sync/internal/infra/mail"
	"github.com/corecrm/crm-sync/internal/infra/queue"
	"github.com/corecrm/crm-sync/internal/infra/worker"
	"github.com/corecrm/crm-sync/internal/usecase"
)

func main() {
	godotenv.Load()

	crmURL := os.Getenv("CRM_API_URL")
	if crmURL == "" {
		log.Fatal("❌ CRM_API_URL deve estar configurado")
	}

	// 1. Auditoria (opcional, sem banco o gateway roda do mesmo jeito)
	var db *sql.DB
	var auditRepo entity.AuditRepositoryInterface
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		conn, err := database.NewDBConnection(dsn)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no banco de auditoria: %v", err)
		}
		db = conn
		defer db.Close()
		auditRepo = database.NewAuditRepository(db)
	} else {
		log.Println("⚠️ DATABASE_URL não configurado, auditoria desligada")
	}

	// 2. Fila (opcional, sem RabbitMQ o batch só roda síncrono)
	var rabbitConn *amqp.Connection
	var producer queue.BatchProducerInterface
	var rabbitCh *amqp.Channel
	if os.Getenv("RABBITMQ_HOST") != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"),
			os.Getenv("RABBITMQ_PASS"),
			os.Getenv("RABBITMQ_HOST"),
			os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
		}
		rabbitConn = rabbitMQ.Conn
		rabbitCh = rabbitMQ.Ch
		defer rabbitConn.Close()
		defer rabbitCh.Close()
		producer = queue.NewProducer(rabbitConn, rabbitCh)
	} else {
		log.Println("⚠️ RABBITMQ_HOST não configurado, batch assíncrono desligado")
	}

	// 3. Gateway da API upstream
	gateway := crmapi.NewClient(crmURL)

	// 4. UseCases
	syncUC := usecase.NewSyncUseCase(gateway, auditRepo)
	guardUC := usecase.NewDeletionGuardUseCase(gateway, auditRepo)

	// 5. Email de relatório (opcional)
	var reporter queue.ReportSender
	if os.Getenv("MAIL_HOST") != "" {
		port, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if port == 0 {
			port = 587
		}
		reporter = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), port,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
	}

	// 6. Worker da fila de batch
	if rabbitCh != nil {
		batchWorker := queue.NewWorker(rabbitCh, syncUC, reporter)
		go batchWorker.Start(queue.QueueName)
	}

	// 7. Worker de retenção da auditoria
	if auditRepo != nil {
		retention := 90 * 24 * time.Hour
		if days, err := strconv.Atoi(os.Getenv("AUDIT_RETENTION_DAYS")); err == nil && days > 0 {
			retention = time.Duration(days) * 24 * time.Hour
		}
		retentionWorker := worker.NewAuditRetentionWorker(auditRepo, retention)
		go retentionWorker.Start(context.Background())
	}

	// 8. Handlers
	syncHandler := handlers.NewSyncHandler(syncUC, producer)
	deletionHandler := handlers.NewDeletionHandler(guardUC)
	stagesHandler := handlers.NewDealStagesHandler(gateway)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 9. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Escrita só com sessão válida
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Post("/sync/lead-to-contact", syncHandler.HandleLeadToContact)
		r.Post("/sync/contact-to-lead", syncHandler.HandleContactToLead)
		r.Post("/sync/batch", syncHandler.HandleBatch)
		r.Post("/sync/batch/enqueue", syncHandler.HandleBatchEnqueue)

		r.Get("/{entity}/{id}/delete-info", deletionHandler.HandleDeleteInfo)
		r.Post("/{entity}/{id}/soft-delete", deletionHandler.HandleSoftDelete)

		r.Get("/deals/stages", stagesHandler.Handle)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 CoreCRM Sync Gateway rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
