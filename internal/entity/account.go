package entity

import "time"

// Ciclos de cobrança aceitos pela API upstream
const (
	BillingCycleMonthly    = "monthly"
	BillingCycleQuarterly  = "quarterly"
	BillingCycleSemiannual = "semiannual"
	BillingCycleAnnual     = "annual"
)

// Status de ciclo de vida de uma conta
const (
	AccountStatusActive    = "active"
	AccountStatusInactive  = "inactive"
	AccountStatusSuspended = "suspended"
	AccountStatusCancelled = "cancelled"
	AccountStatusPending   = "pending"
)

// Entidade: Account (relação de cobrança/serviço vinculada a um Contact)
type Account struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contactId"`
	ServiceType  string    `json:"serviceType"`
	PriceCents   int       `json:"priceCents"`
	BillingCycle string    `json:"billingCycle"`
	StartDate    time.Time `json:"startDate"`
	RenewalDate  time.Time `json:"renewalDate"` // derivada: StartDate + ciclo
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NextRenewalDate deriva a data de renovação a partir do início + ciclo.
// Ciclo desconhecido cai no mensal, igual ao comportamento do backend.
func NextRenewalDate(start time.Time, cycle string) time.Time {
	switch cycle {
	case BillingCycleQuarterly:
		return start.AddDate(0, 3, 0)
	case BillingCycleSemiannual:
		return start.AddDate(0, 6, 0)
	case BillingCycleAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
