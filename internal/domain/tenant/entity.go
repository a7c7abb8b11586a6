package tenant

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("nome da organização não pode ser vazio")
	ErrDuplicateName = errors.New("já existe uma organização com este nome")
	ErrNotActive     = errors.New("organização não está ativa")
)

// Settings é o mapa de configurações da organização.
// A mesclagem é rasa: cada chave é sobrescrita por inteiro.
type Settings map[string]interface{}

// DefaultSettings retorna as configurações iniciais de uma organização
func DefaultSettings(name string) Settings {
	return Settings{
		"company_name":        name,
		"company_address":     "",
		"company_phone":       "",
		"company_email":       "",
		"company_logo":        "",
		"tax_rate":            0.0,
		"currency":            "USD",
		"date_format":         "MM/DD/YYYY",
		"time_zone":           "UTC",
		"invoice_prefix":      "INV",
		"invoice_counter":     1,
		"payment_terms":       "Net 30",
		"late_fee_enabled":    false,
		"late_fee_percentage": 0.0,
		"branding_enabled":    false,
	}
}

// Tenant representa uma organização no sistema multi-tenant
type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Domain      string    `json:"domain,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Settings    Settings  `json:"settings"`
	IsActive    bool      `json:"is_active"`
	Plan        string    `json:"plan"`
	MaxUsers    int       `json:"max_users"`
	MaxInvoices int       `json:"max_invoices"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTenant cria uma nova organização com as configurações padrão.
// O slug deve ser gerado com UniqueSlug antes de persistir.
func NewTenant(name, domain string) (*Tenant, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	return &Tenant{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        Slugify(name),
		Domain:      domain,
		Settings:    DefaultSettings(name),
		IsActive:    true,
		Plan:        "basic",
		MaxUsers:    5,
		MaxInvoices: 100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Slugify deriva o slug base a partir do nome: minúsculas,
// espaços e sublinhados viram hífens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	return slug
}

// UniqueSlug gera um slug único a partir do base, acrescentando
// o sufixo -1, -2, ... enquanto houver colisão segundo exists.
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	slug := base
	counter := 1
	for {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(counter)
		counter++
	}
}

// MergeSettings mescla as chaves informadas sobre as configurações
// existentes (sobrescrita rasa por chave)
func (t *Tenant) MergeSettings(partial Settings) {
	if t.Settings == nil {
		t.Settings = Settings{}
	}
	for k, v := range partial {
		t.Settings[k] = v
	}
	t.UpdatedAt = time.Now().UTC()
}

// Rename altera o nome da organização.
// A unicidade do novo nome deve ser verificada pelo chamador.
func (t *Tenant) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	t.Name = name
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetDomain altera o domínio da organização
func (t *Tenant) SetDomain(domain string) {
	t.Domain = domain
	t.UpdatedAt = time.Now().UTC()
}
