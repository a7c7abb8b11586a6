package route

import (
	"github.com/gin-gonic/gin"

	"github.com/otienog1/invoice/internal/adapter/api/controller"
	"github.com/otienog1/invoice/pkg/auth"
)

// RegisterAuthRoutes registra as rotas de autenticação e perfil
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController, jwtService *auth.JWTService) {
	authRouter := r.Group("/auth")
	{
		// Cadastro e login não requerem autenticação
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)

		// Perfil requer o token, mas não exige organização vinculada
		authRouter.GET("/profile", auth.JWTAuthMiddleware(jwtService), authController.GetProfile)
		authRouter.PUT("/profile", auth.JWTAuthMiddleware(jwtService), authController.UpdateProfile)
	}
}
