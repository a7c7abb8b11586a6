package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("nome do cliente não pode ser vazio")
)

// Customer representa um cliente da organização
type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	CreatedBy string    `json:"created_by"` // Usuário que cadastrou (apenas auditoria)
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxPIN    string    `json:"tax_pin,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer cria um novo cliente
func NewCustomer(tenantID, createdBy, name string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		CreatedBy: createdBy,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch enumera os campos do cliente que podem ser atualizados
type Patch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	TaxPIN  *string `json:"tax_pin"`
	Company *string `json:"company"`
}

// Apply aplica o patch campo a campo sobre o cliente
func (c *Customer) Apply(p Patch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return ErrEmptyName
		}
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.TaxPIN != nil {
		c.TaxPIN = *p.TaxPIN
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}
