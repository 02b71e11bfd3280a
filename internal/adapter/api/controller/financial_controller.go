package controller

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/dto"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	attendancedomain "github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
	"github.com/marianaduarte/erp-estetica/internal/service"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// exportLimit limita o número de registros da exportação CSV
const exportLimit = 10000

// FinancialController gerencia as requisições de relatórios financeiros e
// distribuição de lucro
type FinancialController struct {
	financialService *service.FinancialService
	configRepo       distribution.ConfigRepository
	distRepo         distribution.Repository
	attendanceRepo   attendancedomain.Repository
	logger           logger.Logger
}

// NewFinancialController cria uma nova instância de FinancialController
func NewFinancialController(
	financialService *service.FinancialService,
	configRepo distribution.ConfigRepository,
	distRepo distribution.Repository,
	attendanceRepo attendancedomain.Repository,
	logger logger.Logger,
) *FinancialController {
	return &FinancialController{
		financialService: financialService,
		configRepo:       configRepo,
		distRepo:         distRepo,
		attendanceRepo:   attendanceRepo,
		logger:           logger,
	}
}

// Summary retorna o resumo financeiro
// @Summary Resumo financeiro
// @Description Agrega receita, custos, lucro e ticket médio dos atendimentos
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Success 200 {object} service.FinancialSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/summary [get]
func (c *FinancialController) Summary(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	dateFrom := parseDateQuery(ctx, "date_from")
	dateTo := parseEndDateQuery(ctx, "date_to")

	summary, err := c.financialService.GetFinancialSummary(ctx, userID, dateFrom, dateTo)
	if err != nil {
		c.logger.Error("erro ao montar resumo financeiro", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar resumo financeiro", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// MonthlyReport retorna o relatório financeiro mensal
// @Summary Relatório mensal
// @Description Agrega os indicadores de um mês com receita por forma de pagamento
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param month query int true "Mês (1-12)"
// @Param year query int true "Ano"
// @Success 200 {object} service.MonthlyReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/monthly-report [get]
func (c *FinancialController) MonthlyReport(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	month, year, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	report, err := c.financialService.GetMonthlyReport(ctx, userID, month, year)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "mês inválido", err.Error()))
			return
		}
		c.logger.Error("erro ao montar relatório mensal", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar relatório mensal", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// RevenueByPeriod retorna a série de receita por período
// @Summary Receita por período
// @Description Série de receita líquida dos atendimentos pagos, agrupada por dia, semana ou mês
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param start_date query string true "Data inicial (2006-01-02)"
// @Param end_date query string true "Data final (2006-01-02)"
// @Param group_by query string false "Agrupamento: day, week ou month"
// @Success 200 {array} service.RevenuePoint
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/revenue-by-period [get]
func (c *FinancialController) RevenueByPeriod(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	startDate := parseDateQuery(ctx, "start_date")
	endDate := parseEndDateQuery(ctx, "end_date")
	if startDate == nil || endDate == nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "informe start_date e end_date no formato 2006-01-02", ""))
		return
	}

	groupBy := service.GroupBy(ctx.DefaultQuery("group_by", "day"))
	if !groupBy.IsValid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "agrupamento inválido", "use day, week ou month"))
		return
	}

	series, err := c.financialService.GetRevenueByPeriod(ctx, userID, *startDate, *endDate, groupBy)
	if err != nil {
		c.logger.Error("erro ao montar série de receita", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar série de receita", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, series)
}

// ListConfigs retorna as configurações de distribuição do usuário
// @Summary Listar configurações de distribuição
// @Description Retorna todas as configurações de distribuição de lucro
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.DistributionConfigResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/configs [get]
func (c *FinancialController) ListConfigs(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	configs, err := c.configRepo.List(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao listar configurações de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar configurações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDistributionConfigListResponse(configs))
}

// CreateConfig cria uma configuração de distribuição
// @Summary Criar configuração de distribuição
// @Description Cria uma regra de alocação percentual do lucro
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param config body dto.DistributionConfigRequest true "Dados da configuração"
// @Success 201 {object} dto.DistributionConfigResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/configs [post]
func (c *FinancialController) CreateConfig(ctx *gin.Context) {
	var req dto.DistributionConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	config, err := distribution.NewConfig(userID, distribution.Category(req.Category), req.Percentage)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar configuração", err.Error()))
		return
	}

	if err := c.configRepo.Create(ctx, config); err != nil {
		c.logger.Error("erro ao criar configuração de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar configuração", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDistributionConfigResponse(config))
}

// UpdateConfig atualiza uma configuração de distribuição
// @Summary Atualizar configuração de distribuição
// @Description Atualiza o percentual e o estado ativo de uma configuração
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da configuração"
// @Param config body dto.DistributionConfigRequest true "Dados da configuração"
// @Success 200 {object} dto.DistributionConfigResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/configs/{id} [put]
func (c *FinancialController) UpdateConfig(ctx *gin.Context) {
	var req dto.DistributionConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	config, err := c.configRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "configuração não encontrada", ""))
			return
		}
		c.logger.Error("erro ao buscar configuração de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configuração", err.Error()))
		return
	}

	if err := config.SetPercentage(req.Percentage); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "percentual inválido", err.Error()))
		return
	}

	if err := c.configRepo.Update(ctx, config); err != nil {
		c.logger.Error("erro ao atualizar configuração de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar configuração", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDistributionConfigResponse(config))
}

// DeactivateConfig desativa uma configuração de distribuição
// @Summary Desativar configuração de distribuição
// @Description Desativa a configuração preservando o histórico
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da configuração"
// @Success 200 {object} dto.DistributionConfigResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/configs/{id} [delete]
func (c *FinancialController) DeactivateConfig(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	config, err := c.configRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "configuração não encontrada", ""))
			return
		}
		c.logger.Error("erro ao buscar configuração de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configuração", err.Error()))
		return
	}

	config.Deactivate()
	if err := c.configRepo.Update(ctx, config); err != nil {
		c.logger.Error("erro ao desativar configuração de distribuição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao desativar configuração", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDistributionConfigResponse(config))
}

// CalculateDistribution calcula a distribuição de lucro de um período
// @Summary Calcular distribuição de lucro
// @Description Calcula a distribuição do lucro do período sem persistir
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param month query int true "Mês (1-12)"
// @Param year query int true "Ano"
// @Success 200 {object} service.DistributionPreview
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/calculate [get]
func (c *FinancialController) CalculateDistribution(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	month, year, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	preview, err := c.financialService.CalculateProfitDistribution(ctx, userID, month, year)
	if err != nil {
		c.respondDistributionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, preview)
}

// ExecuteDistribution executa a distribuição de lucro de um período
// @Summary Executar distribuição de lucro
// @Description Recalcula e persiste a distribuição do período; cada período só pode ser executado uma vez
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param month query int true "Mês (1-12)"
// @Param year query int true "Ano"
// @Success 201 {object} dto.DistributionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/execute [post]
func (c *FinancialController) ExecuteDistribution(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	month, year, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	dist, err := c.financialService.ExecuteProfitDistribution(ctx, userID, month, year)
	if err != nil {
		if errors.Is(err, repository.ErrDistributionExists) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "distribuição já executada para o período", ""))
			return
		}
		c.respondDistributionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDistributionResponse(dist))
}

// ListDistributions retorna as distribuições executadas
// @Summary Listar distribuições
// @Description Retorna a lista paginada de distribuições executadas
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distributions [get]
func (c *FinancialController) ListDistributions(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	page, size := parsePageQuery(ctx)
	offset := (page - 1) * size

	rows, total, err := c.distRepo.List(ctx, userID, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar distribuições", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar distribuições", err.Error()))
		return
	}

	items := make([]dto.DistributionResponse, len(rows))
	for i, d := range rows {
		items[i] = *dto.ToDistributionResponse(d)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total":       total,
		"page":        page,
		"size":        size,
		"total_pages": dto.TotalPages(total, size),
	})
}

// DistributionSummary retorna o resumo das distribuições executadas
// @Summary Resumo de distribuições
// @Description Soma os valores por categoria das distribuições do intervalo
// @Tags financial
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Success 200 {object} service.DistributionSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/distribution/summary [get]
func (c *FinancialController) DistributionSummary(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	dateFrom := parseDateQuery(ctx, "date_from")
	dateTo := parseEndDateQuery(ctx, "date_to")

	summary, err := c.financialService.GetProfitDistributionSummary(ctx, userID, dateFrom, dateTo)
	if err != nil {
		c.logger.Error("erro ao montar resumo de distribuições", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar resumo de distribuições", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// ExportAttendances exporta os atendimentos do intervalo em CSV
// @Summary Exportar atendimentos
// @Description Exporta os atendimentos do intervalo em CSV para conciliação
// @Tags financial
// @Accept json
// @Produce text/csv
// @Param Authorization header string true "Bearer token"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Success 200 {string} string "arquivo CSV"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /financial/export [get]
func (c *FinancialController) ExportAttendances(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	filter := attendancedomain.Filter{
		DateFrom: parseDateQuery(ctx, "date_from"),
		DateTo:   parseEndDateQuery(ctx, "date_to"),
	}
	sort := attendancedomain.Sort{Field: "date"}

	rows, _, err := c.attendanceRepo.ListWithDetails(ctx, userID, filter, sort, exportLimit, 0)
	if err != nil {
		c.logger.Error("erro ao carregar atendimentos para exportação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao exportar atendimentos", err.Error()))
		return
	}

	filename := fmt.Sprintf("atendimentos-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write([]string{
		"data", "cliente", "procedimento", "valor", "desconto",
		"valor_liquido", "custo_produtos", "lucro",
		"forma_pagamento", "status_pagamento",
	})

	for _, a := range rows {
		_ = w.Write([]string{
			a.Date.Format("2006-01-02"),
			a.ClientName,
			a.ProcedureName,
			strconv.FormatFloat(a.Value, 'f', 2, 64),
			strconv.FormatFloat(a.Discount, 'f', 2, 64),
			strconv.FormatFloat(a.NetValue(), 'f', 2, 64),
			strconv.FormatFloat(a.ProductCost, 'f', 2, 64),
			strconv.FormatFloat(a.Profit(), 'f', 2, 64),
			string(a.PaymentMethod),
			string(a.PaymentStatus),
		})
	}
	w.Flush()
}

// respondDistributionError mapeia os erros do cálculo de distribuição para
// os códigos HTTP adequados
func (c *FinancialController) respondDistributionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMonth):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "mês inválido", err.Error()))
	case errors.Is(err, service.ErrNoActiveConfigs):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "nenhuma configuração de distribuição ativa", err.Error()))
	case errors.Is(err, service.ErrInvalidPercentageSum):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "percentuais ativos devem somar 100", err.Error()))
	default:
		c.logger.Error("erro ao calcular distribuição de lucro", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular distribuição", err.Error()))
	}
}

// parsePeriodQuery lê e valida os parâmetros month e year. Em caso de erro a
// resposta já foi escrita.
func parsePeriodQuery(ctx *gin.Context) (month, year int, ok bool) {
	month, errM := strconv.Atoi(ctx.Query("month"))
	year, errY := strconv.Atoi(ctx.Query("year"))
	if errM != nil || errY != nil || month < 1 || month > 12 || year < 2000 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "informe month (1-12) e year válidos", ""))
		return 0, 0, false
	}
	return month, year, true
}
