package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otienog1/invoice/internal/domain/tenant"
	"github.com/otienog1/invoice/internal/domain/user"
)

// Erros específicos do repositório
var (
	ErrTenantNotFound      = errors.New("tenant não encontrado")
	ErrTenantDuplicateName = errors.New("já existe um tenant com este nome")
	ErrTenantDuplicateSlug = errors.New("já existe um tenant com este slug")
)

// TenantRepository implementa a interface tenant.Repository
type TenantRepository struct {
	db *pgxpool.Pool
}

// NewTenantRepository cria uma nova instância de TenantRepository
func NewTenantRepository(db *pgxpool.Pool) tenant.Repository {
	return &TenantRepository{db: db}
}

// Create implementa tenant.Repository.Create. A criação do tenant e o
// vínculo do usuário criador como administrador acontecem na mesma
// transação: ou ambos persistem, ou nenhum.
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant, adminUserID string) error {
	settings, err := json.Marshal(t.Settings)
	if err != nil {
		return fmt.Errorf("erro ao serializar configurações do tenant: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO tenants (
			id, name, slug, domain, logo, settings, is_active, plan,
			max_users, max_invoices, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Name, t.Slug, t.Domain, t.Logo, settings, t.IsActive,
		t.Plan, t.MaxUsers, t.MaxInvoices, t.CreatedAt, t.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "tenants_name_key") {
			return ErrTenantDuplicateName
		}
		if isUniqueViolation(err, "tenants_slug_key") {
			return ErrTenantDuplicateSlug
		}
		return fmt.Errorf("erro ao criar tenant: %w", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE users SET tenant_id = $1, role = $2, updated_at = NOW() WHERE id = $3`,
		t.ID, user.RoleAdmin, adminUserID)
	if err != nil {
		return fmt.Errorf("erro ao vincular usuário ao tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// FindByID implementa tenant.Repository.FindByID
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var settings []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, domain, logo, settings, is_active, plan,
			max_users, max_invoices, created_at, updated_at
		FROM tenants WHERE id = $1`, id).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Domain, &t.Logo, &settings,
		&t.IsActive, &t.Plan, &t.MaxUsers, &t.MaxInvoices,
		&t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tenant: %w", err)
	}

	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &t.Settings); err != nil {
			return nil, fmt.Errorf("erro ao deserializar configurações do tenant: %w", err)
		}
	}

	return &t, nil
}

// Update implementa tenant.Repository.Update
func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	settings, err := json.Marshal(t.Settings)
	if err != nil {
		return fmt.Errorf("erro ao serializar configurações do tenant: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE tenants SET
			name = $1, slug = $2, domain = $3, logo = $4, settings = $5,
			is_active = $6, plan = $7, max_users = $8, max_invoices = $9,
			updated_at = $10
		WHERE id = $11`,
		t.Name, t.Slug, t.Domain, t.Logo, settings, t.IsActive,
		t.Plan, t.MaxUsers, t.MaxInvoices, t.UpdatedAt, t.ID)

	if err != nil {
		if isUniqueViolation(err, "tenants_name_key") {
			return ErrTenantDuplicateName
		}
		return fmt.Errorf("erro ao atualizar tenant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTenantNotFound
	}

	return nil
}

// ExistsByName implementa tenant.Repository.ExistsByName
func (r *TenantRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tenants WHERE name = $1 AND id != $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do tenant: %w", err)
	}
	return exists, nil
}

// ExistsBySlug implementa tenant.Repository.ExistsBySlug
func (r *TenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tenants WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do slug: %w", err)
	}
	return exists, nil
}
