package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otienog1/invoice/internal/domain/customer"
)

// Erros específicos do repositório
var (
	ErrCustomerNotFound    = errors.New("cliente não encontrado")
	ErrCustomerHasInvoices = errors.New("cliente possui faturas associadas e não pode ser excluído")
)

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, tenant_id, created_by, name, email, phone,
	address, tax_pin, company, created_at, updated_at`

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (
			id, tenant_id, created_by, name, email, phone, address,
			tax_pin, company, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.TenantID, c.CreatedBy, c.Name, c.Email, c.Phone,
		c.Address, c.TaxPIN, c.Company, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID. O filtro por tenant
// acontece na própria consulta: um cliente de outro tenant resulta em
// ErrCustomerNotFound, nunca em vazamento de dados.
func (r *CustomerRepository) FindByID(ctx context.Context, tenantID, id string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)
	return scanCustomer(row)
}

// List implementa customer.Repository.List. A busca textual cobre nome,
// email e empresa, sem diferenciar maiúsculas.
func (r *CustomerRepository) List(ctx context.Context, tenantID, search string, limit, offset int) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if search != "" {
		query += ` AND (name ILIKE $2 OR email ILIKE $2 OR company ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		var c customer.Customer
		err := rows.Scan(
			&c.ID, &c.TenantID, &c.CreatedBy, &c.Name, &c.Email, &c.Phone,
			&c.Address, &c.TaxPIN, &c.Company, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return customers, nil
}

// CountByTenant implementa customer.Repository.CountByTenant
func (r *CustomerRepository) CountByTenant(ctx context.Context, tenantID, search string) (int, error) {
	query := `SELECT COUNT(*) FROM customers WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if search != "" {
		query += ` AND (name ILIKE $2 OR email ILIKE $2 OR company ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $1, email = $2, phone = $3, address = $4,
			tax_pin = $5, company = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`,
		c.Name, c.Email, c.Phone, c.Address, c.TaxPIN, c.Company,
		c.UpdatedAt, c.ID, c.TenantID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete implementa customer.Repository.Delete. A linha do cliente é
// bloqueada antes da contagem de faturas para que nenhuma fatura possa
// ser criada entre a verificação e a exclusão.
func (r *CustomerRepository) Delete(ctx context.Context, tenantID, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM customers WHERE id = $1 AND tenant_id = $2 FOR UPDATE`,
		id, tenantID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("erro ao bloquear cliente: %w", err)
	}

	var invoiceCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE customer_id = $1 AND tenant_id = $2`,
		id, tenantID).Scan(&invoiceCount)
	if err != nil {
		return fmt.Errorf("erro ao contar faturas do cliente: %w", err)
	}
	if invoiceCount > 0 {
		return ErrCustomerHasInvoices
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM customers WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("erro ao excluir cliente: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// Exists implementa customer.Repository.Exists
func (r *CustomerRepository) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND tenant_id = $2)`,
		id, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	return exists, nil
}

// scanCustomer lê um cliente de uma linha de resultado
func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer

	err := row.Scan(
		&c.ID, &c.TenantID, &c.CreatedBy, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.TaxPIN, &c.Company, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &c, nil
}
