package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername = errors.New("nome de usuário não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyPassword = errors.New("senha não pode ser vazia")
)

// Role representa o papel do usuário dentro da organização
type Role string

const (
	RoleAdmin  Role = "admin"  // Administrador da organização
	RoleMember Role = "member" // Membro regular
)

// User representa um usuário do sistema
type User struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id,omitempty"` // Vazio até o usuário criar ou entrar em uma organização
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"` // Nunca serializado nas respostas
	Avatar         string    `json:"avatar,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty"`
	CompanyLogo    string    `json:"company_logo,omitempty"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário com a senha já em hash
func NewUser(username, email, name, password string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Name:      name,
		Role:      RoleMember,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash bcrypt
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin verifica se o usuário é administrador da organização
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasTenant verifica se o usuário pertence a uma organização
func (u *User) HasTenant() bool {
	return u.TenantID != ""
}

// AssignTenant vincula o usuário a uma organização com o papel informado
func (u *User) AssignTenant(tenantID string, role Role) {
	u.TenantID = tenantID
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
}

// Patch enumera os campos do perfil que podem ser atualizados
type Patch struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	Avatar         *string `json:"avatar"`
	CompanyLogo    *string `json:"company_logo"`
}

// Apply aplica o patch campo a campo sobre o usuário
func (u *User) Apply(p Patch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return ErrEmptyName
		}
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.CompanyAddress != nil {
		u.CompanyAddress = *p.CompanyAddress
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.CompanyLogo != nil {
		u.CompanyLogo = *p.CompanyLogo
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}
