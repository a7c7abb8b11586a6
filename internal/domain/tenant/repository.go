package tenant

import (
	"context"
)

// Repository define a interface para operações de repositório de organizações
type Repository interface {
	// Create persiste a organização e vincula o usuário criador como admin,
	// em uma única transação
	Create(ctx context.Context, t *Tenant, adminUserID string) error

	// FindByID busca uma organização pelo ID
	FindByID(ctx context.Context, id string) (*Tenant, error)

	// Update atualiza nome, domínio e configurações da organização
	Update(ctx context.Context, t *Tenant) error

	// ExistsByName verifica se já existe organização com o nome,
	// ignorando o ID informado (vazio para não ignorar nenhum)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)

	// ExistsBySlug verifica se já existe organização com o slug
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
