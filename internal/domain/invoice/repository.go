package invoice

import (
	"context"
)

// Repository define a interface para operações de repositório de faturas.
// Consultas são sempre delimitadas pelo tenant; IDs fora do escopo se
// comportam como inexistentes.
type Repository interface {
	// Create persiste a fatura e seus itens como uma unidade atômica.
	// Retorna ErrDuplicateNumber quando o número colide; o chamador
	// regenera o número e tenta novamente.
	Create(ctx context.Context, i *Invoice) error

	// FindByID busca uma fatura (com itens) pelo ID dentro do tenant
	FindByID(ctx context.Context, tenantID, id string) (*Invoice, error)

	// List lista as faturas do tenant, com filtro opcional de status
	List(ctx context.Context, tenantID string, status Status, limit, offset int) ([]*Invoice, error)

	// CountByTenant conta as faturas do tenant com o mesmo filtro de List
	CountByTenant(ctx context.Context, tenantID string, status Status) (int, error)

	// Update atualiza os campos escalares e, quando replaceItems é
	// verdadeiro, substitui todos os itens (delete + insert) na mesma
	// transação
	Update(ctx context.Context, i *Invoice, replaceItems bool) error

	// UpdateStatus persiste apenas a transição de status e os campos de
	// pagamento da fatura
	UpdateStatus(ctx context.Context, i *Invoice) error

	// Delete remove a fatura e seus itens (cascata)
	Delete(ctx context.Context, tenantID, id string) error

	// CountByCustomer conta as faturas que referenciam um cliente
	CountByCustomer(ctx context.Context, tenantID, customerID string) (int, error)
}
