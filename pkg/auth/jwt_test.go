package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otienog1/invoice/internal/domain/user"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "chave-de-teste")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")

	svc, err := NewJWTService()
	require.NoError(t, err)
	return svc
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("jdoe", "jdoe@example.com", "John Doe", "s3nh4-f0rte")
	require.NoError(t, err)
	return u
}

func TestNewJWTService(t *testing.T) {
	t.Run("sem chave secreta falha", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		_, err := NewJWTService()
		assert.ErrorIs(t, err, ErrMissingJWTKey)
	})

	t.Run("expiração configurável", func(t *testing.T) {
		svc := newTestService(t)
		assert.Equal(t, time.Hour, svc.Expiration())
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)

	t.Run("ida e volta das claims", func(t *testing.T) {
		u := testUser(t)
		u.AssignTenant("tenant-1", user.RoleAdmin)

		token, err := svc.GenerateToken(u)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "tenant-1", claims.TenantID)
		assert.Equal(t, u.Email, claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("usuário sem organização gera token sem tenant", func(t *testing.T) {
		token, err := svc.GenerateToken(testUser(t))
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Empty(t, claims.TenantID)
	})

	t.Run("token adulterado é rejeitado", func(t *testing.T) {
		token, err := svc.GenerateToken(testUser(t))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token de outra chave é rejeitado", func(t *testing.T) {
		other := &JWTService{secretKey: []byte("outra-chave"), expiration: time.Hour}
		token, err := other.GenerateToken(testUser(t))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token expirado é rejeitado", func(t *testing.T) {
		u := testUser(t)
		now := time.Now().Add(-2 * time.Hour)
		claims := JWTClaims{
			UserID: u.ID,
			Email:  u.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   u.ID,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secretKey)
		require.NoError(t, err)

		_, err = svc.ValidateToken(expired)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
