package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("jdoe", "jdoe@example.com", "John Doe", "s3nh4-f0rte")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleMember, u.Role)
	assert.True(t, u.IsActive)
	assert.False(t, u.HasTenant())

	// A senha nunca é armazenada em claro
	assert.NotEqual(t, "s3nh4-f0rte", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3nh4-f0rte"))
	assert.False(t, u.CheckPassword("errada"))
}

func TestAssignTenant(t *testing.T) {
	u, err := NewUser("jdoe", "jdoe@example.com", "John Doe", "s3nh4-f0rte")
	require.NoError(t, err)

	u.AssignTenant("tenant-1", RoleAdmin)

	assert.True(t, u.HasTenant())
	assert.True(t, u.IsAdmin())
	assert.Equal(t, "tenant-1", u.TenantID)
}

func TestApplyPatch(t *testing.T) {
	u, err := NewUser("jdoe", "jdoe@example.com", "John Doe", "s3nh4-f0rte")
	require.NoError(t, err)

	name := "John M. Doe"
	company := "Doe Consulting"
	require.NoError(t, u.Apply(Patch{Name: &name, CompanyName: &company}))

	assert.Equal(t, "John M. Doe", u.Name)
	assert.Equal(t, "Doe Consulting", u.CompanyName)
	// Campos ausentes não são alterados
	assert.Equal(t, "jdoe@example.com", u.Email)

	empty := ""
	assert.ErrorIs(t, u.Apply(Patch{Name: &empty}), ErrEmptyName)
}
