package entity

import (
	"errors"
	"time"
)

var ErrContactNotFound = errors.New("contato não encontrado")

// Entidade: Contact (relacionamento confirmado, opcionalmente derivado de um Lead)
//
// LeadID é uma referência fraca: serve só para lookup/sync. Apagar o Lead
// não apaga o Contact e vice-versa.
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// nil = contato criado de forma independente, sem Lead de origem
	LeadID *string `json:"leadId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) Validate() error {
	if c.ID == "" {
		return errors.New("contact id is required")
	}
	return nil
}

// HasLead indica se o contato foi originado de um Lead
func (c *Contact) HasLead() bool {
	return c.LeadID != nil && *c.LeadID != ""
}
