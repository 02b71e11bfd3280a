package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterAttendanceRoutes registra as rotas do módulo de atendimentos
func RegisterAttendanceRoutes(r *gin.RouterGroup, attendanceController *controller.AttendanceController) {
	attendances := r.Group("/attendances")
	attendances.Use(auth.JWTAuthMiddleware())
	{
		attendances.POST("", attendanceController.Create)
		attendances.GET("", attendanceController.List)
		attendances.GET("/:id", attendanceController.Get)
		attendances.PUT("/:id", attendanceController.Update)
		attendances.PATCH("/:id/status", attendanceController.UpdateStatus)
		attendances.DELETE("/:id", attendanceController.Delete)
	}
}
