package route

import (
	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/controller"
	"github.com/otienog1/invoice/pkg/auth"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, jwtService *auth.JWTService) {
	customers := r.Group("/customers")
	customers.Use(auth.JWTAuthMiddleware(jwtService), auth.TenantRequired())
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", customerController.Delete)
	}
}
