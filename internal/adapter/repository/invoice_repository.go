package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otienog1/invoice/internal/domain/invoice"
)

// InvoiceRepository implementa a interface invoice.Repository
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository cria uma nova instância de InvoiceRepository
func NewInvoiceRepository(db *pgxpool.Pool) invoice.Repository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, tenant_id, created_by, customer_id, invoice_number,
	title, description, issue_date, due_date, status, subtotal, tax_rate,
	tax_amount, discount_rate, discount_amount, total_amount, paid_amount,
	payment_date, notes, terms, created_at, updated_at`

// Create implementa invoice.Repository.Create. A fatura e seus itens são
// persistidos na mesma transação. Colisão no número único da fatura vira
// invoice.ErrDuplicateNumber para o chamador regenerar e tentar de novo.
func (r *InvoiceRepository) Create(ctx context.Context, i *invoice.Invoice) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO invoices (
			id, tenant_id, created_by, customer_id, invoice_number, title,
			description, issue_date, due_date, status, subtotal, tax_rate,
			tax_amount, discount_rate, discount_amount, total_amount,
			paid_amount, payment_date, notes, terms, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		i.ID, i.TenantID, i.CreatedBy, i.CustomerID, i.InvoiceNumber,
		i.Title, i.Description, i.IssueDate, i.DueDate, i.Status,
		i.Subtotal, i.TaxRate, i.TaxAmount, i.DiscountRate,
		i.DiscountAmount, i.TotalAmount, i.PaidAmount, i.PaymentDate,
		i.Notes, i.Terms, i.CreatedAt, i.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "invoices_invoice_number_key") {
			return invoice.ErrDuplicateNumber
		}
		return fmt.Errorf("erro ao criar fatura: %w", err)
	}

	if err := insertItems(ctx, tx, i); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// FindByID implementa invoice.Repository.FindByID, carregando também os
// itens na ordem de exibição
func (r *InvoiceRepository) FindByID(ctx context.Context, tenantID, id string) (*invoice.Invoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)

	i, err := scanInvoice(row)
	if err != nil {
		return nil, err
	}

	items, err := r.findItems(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	i.Items = items

	return i, nil
}

// List implementa invoice.Repository.List. Os itens não são carregados
// na listagem; use FindByID para a fatura completa.
func (r *InvoiceRepository) List(ctx context.Context, tenantID string, status invoice.Status, limit, offset int) ([]*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar faturas: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer faturas: %w", err)
	}

	return invoices, nil
}

// CountByTenant implementa invoice.Repository.CountByTenant
func (r *InvoiceRepository) CountByTenant(ctx context.Context, tenantID string, status invoice.Status) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar faturas: %w", err)
	}

	return count, nil
}

// Update implementa invoice.Repository.Update. Quando replaceItems é
// verdadeiro, os itens antigos são removidos e os atuais inseridos na
// mesma transação da atualização dos campos escalares.
func (r *InvoiceRepository) Update(ctx context.Context, i *invoice.Invoice, replaceItems bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE invoices SET
			title = $1, description = $2, due_date = $3, subtotal = $4,
			tax_rate = $5, tax_amount = $6, discount_rate = $7,
			discount_amount = $8, total_amount = $9, notes = $10,
			terms = $11, updated_at = $12
		WHERE id = $13 AND tenant_id = $14`,
		i.Title, i.Description, i.DueDate, i.Subtotal, i.TaxRate,
		i.TaxAmount, i.DiscountRate, i.DiscountAmount, i.TotalAmount,
		i.Notes, i.Terms, i.UpdatedAt, i.ID, i.TenantID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar fatura: %w", err)
	}

	if result.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	if replaceItems {
		_, err = tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, i.ID)
		if err != nil {
			return fmt.Errorf("erro ao remover itens da fatura: %w", err)
		}
		if err := insertItems(ctx, tx, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// UpdateStatus implementa invoice.Repository.UpdateStatus
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, i *invoice.Invoice) error {
	result, err := r.db.Exec(ctx,
		`UPDATE invoices SET
			status = $1, paid_amount = $2, payment_date = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		i.Status, i.PaidAmount, i.PaymentDate, i.UpdatedAt, i.ID, i.TenantID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status da fatura: %w", err)
	}

	if result.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

// Delete implementa invoice.Repository.Delete. Os itens são removidos em
// cascata pela foreign key.
func (r *InvoiceRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM invoices WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("erro ao excluir fatura: %w", err)
	}

	if result.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

// CountByCustomer implementa invoice.Repository.CountByCustomer
func (r *InvoiceRepository) CountByCustomer(ctx context.Context, tenantID, customerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE customer_id = $1 AND tenant_id = $2`,
		customerID, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar faturas do cliente: %w", err)
	}
	return count, nil
}

// findItems carrega os itens de uma fatura na ordem de exibição
func (r *InvoiceRepository) findItems(ctx context.Context, invoiceID string) ([]invoice.InvoiceItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, invoice_id, description, quantity, rate, total, position
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da fatura: %w", err)
	}
	defer rows.Close()

	var items []invoice.InvoiceItem
	for rows.Next() {
		var it invoice.InvoiceItem
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description,
			&it.Quantity, &it.Rate, &it.Total, &it.Position)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item da fatura: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer itens da fatura: %w", err)
	}

	return items, nil
}

// insertItems insere os itens da fatura dentro da transação informada
func insertItems(ctx context.Context, tx pgx.Tx, i *invoice.Invoice) error {
	for _, it := range i.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_items (
				id, invoice_id, description, quantity, rate, total, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.InvoiceID, it.Description, it.Quantity, it.Rate,
			it.Total, it.Position)
		if err != nil {
			return fmt.Errorf("erro ao inserir item da fatura: %w", err)
		}
	}
	return nil
}

// scanInvoice lê uma fatura de uma linha de resultado
func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var i invoice.Invoice

	err := row.Scan(
		&i.ID, &i.TenantID, &i.CreatedBy, &i.CustomerID, &i.InvoiceNumber,
		&i.Title, &i.Description, &i.IssueDate, &i.DueDate, &i.Status,
		&i.Subtotal, &i.TaxRate, &i.TaxAmount, &i.DiscountRate,
		&i.DiscountAmount, &i.TotalAmount, &i.PaidAmount, &i.PaymentDate,
		&i.Notes, &i.Terms, &i.CreatedAt, &i.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar fatura: %w", err)
	}

	return &i, nil
}
