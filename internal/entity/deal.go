package entity

import "time"

// Entidade: Deal (oportunidade no pipeline de vendas)
type Deal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Stage       string    `json:"stage"` // conjunto dinâmico, ver DefaultDealStages
	AmountCents int       `json:"amountCents"`
	Probability int       `json:"probability"` // 0-100
	CloseDate   time.Time `json:"closeDate"`
	ContactID   *string   `json:"contactId,omitempty"`
	AccountID   *string   `json:"accountId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultDealStages é o fallback usado quando o endpoint de estágios
// da API upstream está fora do ar ou ainda não foi publicado.
func DefaultDealStages() []string {
	return []string{
		"Prospecting",
		"Qualification",
		"Proposal",
		"Negotiation",
		"Closed Won",
		"Closed Lost",
	}
}
