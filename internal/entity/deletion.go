package entity

// Dependency descreve outra entidade que referencia o registro alvo
type Dependency struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DeletionCheck é a resposta do endpoint de delete-info da API upstream.
// Não é persistido localmente.
type DeletionCheck struct {
	CanDelete    bool         `json:"canDelete"`
	Blockers     []string     `json:"blockers"`
	Warnings     []string     `json:"warnings"`
	Dependencies []Dependency `json:"dependencies"`
}

// IsBlocked: nenhum delete pode prosseguir enquanto houver dependências,
// blockers, ou canDelete=false.
func (d *DeletionCheck) IsBlocked() bool {
	return !d.CanDelete || len(d.Dependencies) > 0 || len(d.Blockers) > 0
}

// OptimisticDeletionCheck é o fallback quando o endpoint de delete-info
// falha (404/500 em ambientes onde ainda não foi liberado). Preferimos
// disponibilidade a bloquear todo delete do sistema.
func OptimisticDeletionCheck() *DeletionCheck {
	return &DeletionCheck{
		CanDelete:    true,
		Blockers:     []string{},
		Warnings:     []string{},
		Dependencies: []Dependency{},
	}
}
