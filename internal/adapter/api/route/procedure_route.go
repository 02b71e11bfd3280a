package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterProcedureRoutes registra as rotas do módulo de procedimentos
func RegisterProcedureRoutes(r *gin.RouterGroup, procedureController *controller.ProcedureController) {
	procedures := r.Group("/procedures")
	procedures.Use(auth.JWTAuthMiddleware())
	{
		procedures.POST("", procedureController.Create)
		procedures.GET("", procedureController.List)
		procedures.GET("/categories", procedureController.Categories)
		procedures.GET("/:id", procedureController.Get)
		procedures.PUT("/:id", procedureController.Update)
		procedures.PATCH("/:id/toggle-status", procedureController.ToggleStatus)
		procedures.DELETE("/:id", procedureController.Delete)
	}
}
