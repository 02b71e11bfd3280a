package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterFinancialRoutes registra as rotas de relatórios financeiros e
// distribuição de lucro
func RegisterFinancialRoutes(r *gin.RouterGroup, financialController *controller.FinancialController) {
	financial := r.Group("/financial")
	financial.Use(auth.JWTAuthMiddleware())
	{
		financial.GET("/summary", financialController.Summary)
		financial.GET("/monthly-report", financialController.MonthlyReport)
		financial.GET("/revenue-by-period", financialController.RevenueByPeriod)
		financial.GET("/export", financialController.ExportAttendances)

		financial.GET("/distribution/configs", financialController.ListConfigs)
		financial.POST("/distribution/configs", financialController.CreateConfig)
		financial.PUT("/distribution/configs/:id", financialController.UpdateConfig)
		financial.DELETE("/distribution/configs/:id", financialController.DeactivateConfig)

		financial.GET("/distribution/calculate", financialController.CalculateDistribution)
		financial.POST("/distribution/execute", financialController.ExecuteDistribution)
		financial.GET("/distribution/summary", financialController.DistributionSummary)
		financial.GET("/distributions", financialController.ListDistributions)
	}
}
