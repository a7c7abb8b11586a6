package dto

import (
	"time"

	"github.com/otienog1/invoice/internal/domain/customer"
)

// CustomerRequest representa a requisição de criação de cliente
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxPIN  string `json:"tax_pin"`
	Company string `json:"company"`
}

// CustomerUpdateRequest representa a requisição de atualização de cliente.
// Apenas os campos presentes são alterados.
type CustomerUpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	TaxPIN  *string `json:"tax_pin"`
	Company *string `json:"company"`
}

// ToPatch converte a requisição para o patch do domínio
func (r CustomerUpdateRequest) ToPatch() customer.Patch {
	return customer.Patch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TaxPIN:  r.TaxPIN,
		Company: r.Company,
	}
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxPIN    string    `json:"tax_pin,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Items       []CustomerResponse `json:"items"`
	Total       int                `json:"total"`
	Pages       int                `json:"pages"`
	CurrentPage int                `json:"current_page"`
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxPIN:    c.TaxPIN,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma página de clientes para DTO
func ToCustomerListResponse(customers []*customer.Customer, total int, p PaginationParams) CustomerListResponse {
	items := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = ToCustomerResponse(c)
	}

	return CustomerListResponse{
		Items:       items,
		Total:       total,
		Pages:       TotalPages(total, p.PageSize),
		CurrentPage: p.Page,
	}
}
