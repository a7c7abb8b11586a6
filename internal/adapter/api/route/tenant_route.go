package route

import (
	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/controller"
	"github.com/otienog1/invoice/pkg/auth"
)

// RegisterTenantRoutes registra as rotas do módulo de organizações
func RegisterTenantRoutes(r *gin.RouterGroup, tenantController *controller.TenantController, jwtService *auth.JWTService) {
	tenants := r.Group("/tenants")
	tenants.Use(auth.JWTAuthMiddleware(jwtService))
	{
		// Criar organização não exige organização prévia
		tenants.POST("", tenantController.Create)

		tenants.GET("/settings", auth.TenantRequired(), tenantController.GetSettings)
		tenants.PUT("/settings", auth.TenantRequired(), auth.AdminRequired(), tenantController.UpdateSettings)
	}
}
