package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/dto"
	"github.com/otienog1/invoice/pkg/tenant"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT.
// As claims válidas são armazenadas no contexto da requisição.
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"autenticação requerida",
				"o cabeçalho Authorization não foi fornecido",
			))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"formato de token inválido",
				"use o formato 'Bearer <token>'",
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "token inválido"
			if err == ErrExpiredToken {
				message = "token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Request = c.Request.WithContext(tenant.SetTenantIDContext(c.Request.Context(), claims.TenantID))

		c.Next()
	}
}

// TenantRequired exige que o principal esteja vinculado a uma
// organização. Deve ser usado após JWTAuthMiddleware.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("tenant_id") == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"organização requerida",
				"o usuário não está associado a nenhuma organização",
			))
			return
		}
		c.Next()
	}
}

// AdminRequired exige que o principal tenha papel de administrador.
// Deve ser usado após JWTAuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"permissão insuficiente",
				"apenas administradores podem executar esta operação",
			))
			return
		}
		c.Next()
	}
}
