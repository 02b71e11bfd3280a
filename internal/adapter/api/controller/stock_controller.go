package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/dto"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	stockdomain "github.com/marianaduarte/erp-estetica/internal/domain/stock"
	"github.com/marianaduarte/erp-estetica/internal/service"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// StockController gerencia as requisições do razão de movimentos de estoque
// e das agregações derivadas
type StockController struct {
	stockService *service.StockService
	movementRepo stockdomain.Repository
	logger       logger.Logger
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockService *service.StockService, movementRepo stockdomain.Repository, logger logger.Logger) *StockController {
	return &StockController{
		stockService: stockService,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateMovement registra um movimento de estoque
// @Summary Registrar movimento
// @Description Registra um movimento de estoque e atualiza o saldo do produto na mesma transação
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param movement body dto.MovementRequest true "Dados do movimento"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements [post]
func (c *StockController) CreateMovement(ctx *gin.Context) {
	var req dto.MovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	m, err := c.stockService.CreateMovement(ctx, userID, req.ToMovementInput())
	if err != nil {
		c.respondMovementError(ctx, err, "erro ao registrar movimento")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMovementResponse(m))
}

// GetMovement retorna um movimento pelo ID
// @Summary Buscar movimento
// @Description Retorna os dados de um movimento de estoque
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do movimento"
// @Success 200 {object} dto.MovementResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements/{id} [get]
func (c *StockController) GetMovement(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	m, err := c.movementRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovementNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "movimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar movimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar movimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementResponse(m))
}

// ListMovements retorna a lista de movimentos
// @Summary Listar movimentos
// @Description Retorna a lista paginada de movimentos com dados do produto
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param product_id query string false "ID do produto"
// @Param movement_type query string false "Tipo do movimento"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Param sort query string false "Campo de ordenação"
// @Param order query string false "Direção (asc ou desc)"
// @Success 200 {object} dto.MovementListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements [get]
func (c *StockController) ListMovements(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	page, size := parsePageQuery(ctx)
	offset := (page - 1) * size

	filter := stockdomain.Filter{
		ProductID:     ctx.Query("product_id"),
		Type:          stockdomain.MovementType(ctx.Query("movement_type")),
		ReferenceID:   ctx.Query("reference_id"),
		ReferenceType: ctx.Query("reference_type"),
		DateFrom:      parseDateQuery(ctx, "date_from"),
		DateTo:        parseEndDateQuery(ctx, "date_to"),
	}
	sort := stockdomain.Sort{
		Field:      ctx.Query("sort"),
		Descending: ctx.Query("order") == "desc",
	}

	rows, total, err := c.movementRepo.List(ctx, userID, filter, sort, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar movimentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar movimentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(rows, total, page, size))
}

// UpdateMovement atualiza um movimento de estoque
// @Summary Atualizar movimento
// @Description Reverte o efeito do movimento original e aplica os novos dados na mesma transação
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do movimento"
// @Param movement body dto.MovementRequest true "Dados do movimento"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements/{id} [put]
func (c *StockController) UpdateMovement(ctx *gin.Context) {
	var req dto.MovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	m, err := c.stockService.UpdateMovement(ctx, userID, id, req.ToMovementInput())
	if err != nil {
		c.respondMovementError(ctx, err, "erro ao atualizar movimento")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementResponse(m))
}

// DeleteMovement remove um movimento de estoque
// @Summary Remover movimento
// @Description Reverte o efeito do movimento sobre o estoque e remove o lançamento
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do movimento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements/{id} [delete]
func (c *StockController) DeleteMovement(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	if err := c.stockService.DeleteMovement(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrMovementNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "movimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao remover movimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover movimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("movimento removido", nil))
}

// Summary retorna o resumo de estoque
// @Summary Resumo de estoque
// @Description Agrega os indicadores dos produtos ativos
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} service.StockSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/summary [get]
func (c *StockController) Summary(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	summary, err := c.stockService.GetStockSummary(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao montar resumo de estoque", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar resumo de estoque", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Alerts retorna os alertas de estoque
// @Summary Alertas de estoque
// @Description Emite os alertas de estoque baixo, vencimento próximo e produtos vencidos, ordenados por severidade
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} service.StockAlert
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/alerts [get]
func (c *StockController) Alerts(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	alerts, err := c.stockService.GetStockAlerts(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao montar alertas de estoque", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar alertas de estoque", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, alerts)
}

// Valuation retorna a valorização do estoque
// @Summary Valorização de estoque
// @Description Calcula o valor monetário do estoque em mãos, total e por categoria
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} service.StockValuation
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/valuation [get]
func (c *StockController) Valuation(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	valuation, err := c.stockService.GetStockValuation(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao montar valorização de estoque", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar valorização de estoque", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, valuation)
}

// MovementSummary retorna o resumo dos movimentos de um período
// @Summary Resumo de movimentos
// @Description Agrega quantidades por tipo e a variação líquida de estoque do período
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Success 200 {object} service.MovementSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/movements/summary [get]
func (c *StockController) MovementSummary(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	dateFrom := parseDateQuery(ctx, "date_from")
	dateTo := parseEndDateQuery(ctx, "date_to")

	summary, err := c.stockService.GetMovementSummary(ctx, userID, dateFrom, dateTo)
	if err != nil {
		c.logger.Error("erro ao montar resumo de movimentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar resumo de movimentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Categories retorna as categorias de produtos
// @Summary Categorias de produtos
// @Description Retorna as categorias distintas dos produtos do usuário
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/categories [get]
func (c *StockController) Categories(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	categories, err := c.stockService.GetProductCategories(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao listar categorias", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar categorias", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// CheckAvailability verifica a disponibilidade de estoque
// @Summary Verificar disponibilidade
// @Description Verifica se a quantidade solicitada está disponível, reportando o déficit quando não está
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param check body dto.AvailabilityRequest true "Produto e quantidade"
// @Success 200 {object} service.AvailabilityCheck
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/availability [post]
func (c *StockController) CheckAvailability(ctx *gin.Context) {
	var req dto.AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	check, err := c.stockService.ValidateStockAvailability(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", ""))
			return
		}
		c.logger.Error("erro ao verificar disponibilidade", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar disponibilidade", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, check)
}

// respondMovementError mapeia os erros de movimento para os códigos HTTP
// adequados
func (c *StockController) respondMovementError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", ""))
	case errors.Is(err, repository.ErrMovementNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "movimento não encontrado", ""))
	case errors.Is(err, stockdomain.ErrEmptyProduct),
		errors.Is(err, stockdomain.ErrInvalidType),
		errors.Is(err, stockdomain.ErrInvalidQuantity),
		errors.Is(err, stockdomain.ErrNegativeUnitCost):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, err.Error()))
	default:
		c.logger.Error(message, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, message, err.Error()))
	}
}
