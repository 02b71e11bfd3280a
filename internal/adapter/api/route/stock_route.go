package route

import (
	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/controller"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
)

// RegisterStockRoutes registra as rotas do módulo de estoque
func RegisterStockRoutes(r *gin.RouterGroup, stockController *controller.StockController) {
	stock := r.Group("/stock")
	stock.Use(auth.JWTAuthMiddleware())
	{
		stock.POST("/movements", stockController.CreateMovement)
		stock.GET("/movements", stockController.ListMovements)
		// Rota fixa antes da rota com parâmetro para não colidir com :id
		stock.GET("/movements/summary", stockController.MovementSummary)
		stock.GET("/movements/:id", stockController.GetMovement)
		stock.PUT("/movements/:id", stockController.UpdateMovement)
		stock.DELETE("/movements/:id", stockController.DeleteMovement)

		stock.GET("/summary", stockController.Summary)
		stock.GET("/alerts", stockController.Alerts)
		stock.GET("/valuation", stockController.Valuation)
		stock.GET("/categories", stockController.Categories)
		stock.POST("/availability", stockController.CheckAvailability)
	}
}
