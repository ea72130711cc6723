package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corecrm/crm-sync/internal/entity"
)

// TestSharedFieldsUnchanged - edição que não toca os quatro campos não conta como mudança
func TestSharedFieldsUnchanged(t *testing.T) {
	before := SharedFields{FirstName: "Bob", LastName: "Dias", Email: "bob@example.com", Phone: "123"}
	after := before

	assert.False(t, SharedFieldsChanged(before, after))
}

// TestSharedFieldsEachFieldCounts - qualquer um dos quatro campos basta
func TestSharedFieldsEachFieldCounts(t *testing.T) {
	base := SharedFields{FirstName: "Bob", LastName: "Dias", Email: "bob@example.com", Phone: "123"}

	cases := map[string]SharedFields{
		"firstName": {FirstName: "Rob", LastName: "Dias", Email: "bob@example.com", Phone: "123"},
		"lastName":  {FirstName: "Bob", LastName: "Lima", Email: "bob@example.com", Phone: "123"},
		"email":     {FirstName: "Bob", LastName: "Dias", Email: "rob@example.com", Phone: "123"},
		"phone":     {FirstName: "Bob", LastName: "Dias", Email: "bob@example.com", Phone: "999"},
	}

	for field, after := range cases {
		assert.True(t, SharedFieldsChanged(base, after), "campo %s deveria disparar mudança", field)
	}
}

// TestSharedFieldsNoNormalization - comparação rasa, espaço em branco conta
func TestSharedFieldsNoNormalization(t *testing.T) {
	before := SharedFields{FirstName: "Bob"}
	after := SharedFields{FirstName: " Bob"}

	assert.True(t, SharedFieldsChanged(before, after))
}

// TestSharedFieldsExtractors - só os quatro campos espelhados entram na comparação
func TestSharedFieldsExtractors(t *testing.T) {
	lead := &entity.Lead{
		ID:         "lead-1",
		FirstName:  "Ana",
		LastName:   "Reis",
		Email:      "ana@example.com",
		Phone:      "111",
		LeadSource: "Website",
		LeadStage:  entity.LeadStageWon,
		Company:    "Acme",
	}
	contact := &entity.Contact{
		ID:        "contact-1",
		FirstName: "Ana",
		LastName:  "Reis",
		Email:     "ana@example.com",
		Phone:     "111",
		LeadID:    strPtr("lead-1"),
	}

	// mesmo conteúdo espelhado, campos exclusivos ignorados
	assert.Equal(t, LeadSharedFields(lead), ContactSharedFields(contact))
	assert.False(t, SharedFieldsChanged(LeadSharedFields(lead), ContactSharedFields(contact)))
}
