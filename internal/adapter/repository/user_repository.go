package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otienog1/invoice/internal/domain/user"
)

// Erros específicos do repositório
var (
	ErrUserNotFound          = errors.New("usuário não encontrado")
	ErrUserDuplicateEmail    = errors.New("já existe um usuário com este email")
	ErrUserDuplicateUsername = errors.New("já existe um usuário com este nome de usuário")
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, tenant_id, username, email, phone, name, password_hash,
	avatar, company_name, company_address, company_logo, role, is_active,
	created_at, updated_at`

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (
			id, tenant_id, username, email, phone, name, password_hash,
			avatar, company_name, company_address, company_logo, role,
			is_active, created_at, updated_at
		) VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		u.ID, u.TenantID, u.Username, u.Email, u.Phone, u.Name, u.PasswordHash,
		u.Avatar, u.CompanyName, u.CompanyAddress, u.CompanyLogo, u.Role,
		u.IsActive, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return ErrUserDuplicateEmail
		}
		if isUniqueViolation(err, "users_username_key") {
			return ErrUserDuplicateUsername
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET
			tenant_id = NULLIF($1, ''), phone = $2, name = $3,
			avatar = $4, company_name = $5, company_address = $6,
			company_logo = $7, role = $8, is_active = $9, updated_at = $10
		WHERE id = $11`,
		u.TenantID, u.Phone, u.Name, u.Avatar, u.CompanyName,
		u.CompanyAddress, u.CompanyLogo, u.Role, u.IsActive, u.UpdatedAt,
		u.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ExistsByEmail implementa user.Repository.ExistsByEmail
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do usuário: %w", err)
	}
	return exists, nil
}

// ExistsByUsername implementa user.Repository.ExistsByUsername
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do usuário: %w", err)
	}
	return exists, nil
}

// scanUser lê um usuário de uma linha de resultado
func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var tenantID *string

	err := row.Scan(
		&u.ID, &tenantID, &u.Username, &u.Email, &u.Phone, &u.Name,
		&u.PasswordHash, &u.Avatar, &u.CompanyName, &u.CompanyAddress,
		&u.CompanyLogo, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	if tenantID != nil {
		u.TenantID = *tenantID
	}

	return &u, nil
}
