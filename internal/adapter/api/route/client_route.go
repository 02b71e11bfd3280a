package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterClientRoutes registra as rotas do módulo de clientes
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController) {
	clients := r.Group("/clients")
	clients.Use(auth.JWTAuthMiddleware())
	{
		clients.POST("", clientController.Create)
		clients.GET("", clientController.List)
		clients.POST("/recompute-segments", clientController.RecomputeSegments)
		clients.GET("/:id", clientController.Get)
		clients.PUT("/:id", clientController.Update)
		clients.DELETE("/:id", clientController.Delete)
	}
}
