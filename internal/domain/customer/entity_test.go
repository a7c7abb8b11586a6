package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("tenant-1", "user-1", "Cliente A")
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "tenant-1", c.TenantID)
	assert.Equal(t, "user-1", c.CreatedBy)
	assert.Equal(t, "Cliente A", c.Name)

	_, err = NewCustomer("tenant-1", "user-1", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestApplyPatch(t *testing.T) {
	c, err := NewCustomer("tenant-1", "user-1", "Cliente A")
	require.NoError(t, err)

	email := "a@example.com"
	company := "Empresa A"
	require.NoError(t, c.Apply(Patch{Email: &email, Company: &company}))

	assert.Equal(t, "a@example.com", c.Email)
	assert.Equal(t, "Empresa A", c.Company)
	// Campos ausentes não são alterados
	assert.Equal(t, "Cliente A", c.Name)

	empty := ""
	assert.ErrorIs(t, c.Apply(Patch{Name: &empty}), ErrEmptyName)
}
