package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

// Ferramenta manual de fumaça: bate na API upstream com o token do .env
// e confere se os endpoints que o gateway usa estão respondendo.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if os.Getenv("CRM_API_URL") == "" || os.Getenv("CRM_API_TOKEN") == "" {
		log.Fatal("❌ CRM_API_URL e CRM_API_TOKEN devem estar configurados no .env")
	}

	client := crmapi.NewClient(os.Getenv("CRM_API_URL"))
	sess := crmapi.Session{Token: os.Getenv("CRM_API_TOKEN")}
	ctx := context.Background()

	fmt.Println("🔄 Consultando estágios de deal...")
	stages, err := client.GetDealStages(ctx, sess)
	if err != nil {
		fmt.Printf("⚠️  Endpoint de estágios indisponível (%v), o gateway usaria o fallback:\n", err)
		stages = entity.DefaultDealStages()
	}
	for _, s := range stages {
		fmt.Printf("   • %s\n", s)
	}

	leadID := os.Getenv("CRM_SMOKE_LEAD_ID")
	if leadID == "" {
		fmt.Println("\nℹ️  Defina CRM_SMOKE_LEAD_ID para testar o lookup de lead/contato.")
		return
	}

	fmt.Printf("\n🔄 Buscando lead %s...\n", leadID)
	lead, err := client.GetLead(ctx, sess, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			log.Fatalf("❌ Lead %s não existe na API upstream", leadID)
		}
		log.Fatalf("❌ Erro ao buscar lead: %v", err)
	}

	fmt.Printf("   Nome: %s %s\n", lead.FirstName, lead.LastName)
	fmt.Printf("   Email: %s\n", lead.Email)
	fmt.Printf("   Estágio: %s (origem: %s)\n", lead.LeadStage, lead.LeadSource)

	contacts, err := client.FindContactsByLead(ctx, sess, leadID)
	if err != nil {
		log.Fatalf("❌ Erro ao buscar contatos do lead: %v", err)
	}

	if len(contacts) == 0 {
		fmt.Println("   Sem contato associado (sync seria no-op).")
		return
	}

	fmt.Printf("   %d contato(s) associado(s):\n", len(contacts))
	for _, c := range contacts {
		fmt.Printf("   • %s | %s %s <%s>\n", c.ID, c.FirstName, c.LastName, c.Email)
	}
}
