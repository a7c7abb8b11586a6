package dto

import (
	"time"

	"github.com/otienog1/invoice/internal/domain/tenant"
)

// TenantRequest representa a requisição de criação de organização
type TenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`
}

// TenantUpdateRequest representa a requisição de atualização de organização.
// Apenas os campos presentes são alterados; Settings é mesclado de forma
// rasa sobre as configurações existentes.
type TenantUpdateRequest struct {
	Name     *string         `json:"name"`
	Domain   *string         `json:"domain"`
	Settings tenant.Settings `json:"settings"`
}

// TenantResponse representa a resposta de organização
type TenantResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Domain      string          `json:"domain,omitempty"`
	Logo        string          `json:"logo,omitempty"`
	Settings    tenant.Settings `json:"settings"`
	IsActive    bool            `json:"is_active"`
	Plan        string          `json:"plan"`
	MaxUsers    int             `json:"max_users"`
	MaxInvoices int             `json:"max_invoices"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToTenantResponse converte uma organização do domínio para DTO
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Domain:      t.Domain,
		Logo:        t.Logo,
		Settings:    t.Settings,
		IsActive:    t.IsActive,
		Plan:        t.Plan,
		MaxUsers:    t.MaxUsers,
		MaxInvoices: t.MaxInvoices,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
