package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"minúsculas", "Acme", "acme"},
		{"espaços viram hífens", "Acme Corp", "acme-corp"},
		{"sublinhados viram hífens", "acme_corp", "acme-corp"},
		{"combinação", "Minha Empresa_LTDA", "minha-empresa-ltda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Run("sem colisão retorna o base", func(t *testing.T) {
		slug, err := UniqueSlug("acme", func(string) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.Equal(t, "acme", slug)
	})

	t.Run("colisões recebem sufixo incremental", func(t *testing.T) {
		taken := map[string]bool{"acme": true, "acme-1": true}
		slug, err := UniqueSlug("acme", func(s string) (bool, error) { return taken[s], nil })
		require.NoError(t, err)
		assert.Equal(t, "acme-2", slug)
	})

	t.Run("erro da consulta é propagado", func(t *testing.T) {
		_, err := UniqueSlug("acme", func(string) (bool, error) {
			return false, assert.AnError
		})
		assert.Error(t, err)
	})
}

func TestNewTenant(t *testing.T) {
	tn, err := NewTenant("Acme Corp", "acme.example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, tn.ID)
	assert.Equal(t, "acme-corp", tn.Slug)
	assert.Equal(t, "basic", tn.Plan)
	assert.Equal(t, 5, tn.MaxUsers)
	assert.Equal(t, 100, tn.MaxInvoices)
	assert.True(t, tn.IsActive)

	// Configurações iniciais carregam o nome da empresa
	assert.Equal(t, "Acme Corp", tn.Settings["company_name"])
	assert.Equal(t, "USD", tn.Settings["currency"])
	assert.Equal(t, "INV", tn.Settings["invoice_prefix"])

	_, err = NewTenant("", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestMergeSettings(t *testing.T) {
	tn, err := NewTenant("Acme", "")
	require.NoError(t, err)

	tn.MergeSettings(Settings{
		"currency": "BRL",
		"tax_rate": 16.0,
	})

	// Chaves informadas são sobrescritas, as demais preservadas
	assert.Equal(t, "BRL", tn.Settings["currency"])
	assert.Equal(t, 16.0, tn.Settings["tax_rate"])
	assert.Equal(t, "Acme", tn.Settings["company_name"])
	assert.Equal(t, "Net 30", tn.Settings["payment_terms"])
}
