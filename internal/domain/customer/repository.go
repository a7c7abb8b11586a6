package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes.
// Todas as consultas são delimitadas pelo tenant: um ID fora do escopo
// do tenant se comporta como inexistente.
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID dentro do tenant
	FindByID(ctx context.Context, tenantID, id string) (*Customer, error)

	// List lista os clientes do tenant com busca opcional (nome, email
	// ou empresa, sem distinção de maiúsculas) e paginação
	List(ctx context.Context, tenantID, search string, limit, offset int) ([]*Customer, error)

	// CountByTenant conta os clientes do tenant que casam com a busca
	CountByTenant(ctx context.Context, tenantID, search string) (int, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// Delete remove um cliente. Falha com ErrCustomerHasInvoices se
	// houver faturas referenciando o cliente; a verificação ocorre na
	// mesma transação do delete, com bloqueio da linha do cliente.
	Delete(ctx context.Context, tenantID, id string) error

	// Exists verifica se um cliente existe dentro do tenant
	Exists(ctx context.Context, tenantID, id string) (bool, error)
}
