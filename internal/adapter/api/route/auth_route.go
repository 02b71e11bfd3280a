package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterAuthRoutes registra as rotas de autenticação
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	routes := r.Group("/auth")
	{
		routes.POST("/register", authController.Register)
		routes.POST("/login", authController.Login)
		routes.POST("/refresh", authController.Refresh)
	}

	protected := r.Group("/auth")
	protected.Use(auth.JWTAuthMiddleware())
	{
		protected.GET("/me", authController.Me)
	}
}
