package usecase

import "github.com/corecrm/crm-sync/internal/entity"

// SharedFields são os quatro campos de identidade espelhados entre
// Lead e Contact. Só eles participam do sync.
type SharedFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func LeadSharedFields(l *entity.Lead) SharedFields {
	return SharedFields{
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Email:     l.Email,
		Phone:     l.Phone,
	}
}

func ContactSharedFields(c *entity.Contact) SharedFields {
	return SharedFields{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// SharedFieldsChanged: comparação rasa, valor a valor. Sem normalizar
// espaço nem caixa: " Bob" e "Bob" contam como mudança. Função pura;
// quem decide chamar o sync é o chamador.
func SharedFieldsChanged(before, after SharedFields) bool {
	return before != after
}
