package dto

import (
	"time"

	"github.com/otienog1/invoice/internal/domain/user"
)

// RegisterRequest representa a requisição de cadastro de usuário
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login com o token JWT
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UpdateProfileRequest representa a requisição de atualização de perfil.
// Apenas os campos presentes são alterados.
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Avatar         *string `json:"avatar"`
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyLogo    *string `json:"company_logo"`
}

// ToPatch converte a requisição para o patch do domínio
func (r UpdateProfileRequest) ToPatch() user.Patch {
	return user.Patch{
		Name:           r.Name,
		Phone:          r.Phone,
		Avatar:         r.Avatar,
		CompanyName:    r.CompanyName,
		CompanyAddress: r.CompanyAddress,
		CompanyLogo:    r.CompanyLogo,
	}
}

// UserResponse representa a resposta de usuário
type UserResponse struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id,omitempty"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty"`
	CompanyLogo    string    `json:"company_logo,omitempty"`
	Role           user.Role `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToUserResponse converte um usuário do domínio para DTO
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		TenantID:       u.TenantID,
		Username:       u.Username,
		Email:          u.Email,
		Phone:          u.Phone,
		Name:           u.Name,
		Avatar:         u.Avatar,
		CompanyName:    u.CompanyName,
		CompanyAddress: u.CompanyAddress,
		CompanyLogo:    u.CompanyLogo,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
