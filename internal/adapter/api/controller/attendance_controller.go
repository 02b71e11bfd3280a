package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/dto"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	attendancedomain "github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// AttendanceController gerencia as requisições relacionadas a atendimentos
type AttendanceController struct {
	attendanceRepo attendancedomain.Repository
	logger         logger.Logger
}

// NewAttendanceController cria uma nova instância de AttendanceController
func NewAttendanceController(attendanceRepo attendancedomain.Repository, logger logger.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// Create cria um novo atendimento
// @Summary Criar atendimento
// @Description Registra um novo atendimento faturado
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param attendance body dto.AttendanceRequest true "Dados do atendimento"
// @Success 201 {object} dto.AttendanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances [post]
func (c *AttendanceController) Create(ctx *gin.Context) {
	var req dto.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	a, err := attendancedomain.NewAttendance(
		userID,
		req.ClientID,
		req.ProcedureID,
		req.Date,
		req.Value,
		req.Discount,
		req.ProductCost,
		attendancedomain.PaymentMethod(req.PaymentMethod),
		attendancedomain.PaymentStatus(req.PaymentStatus),
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar atendimento", err.Error()))
		return
	}

	a.Notes = req.Notes
	a.SatisfactionRating = req.SatisfactionRating
	if err := a.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar atendimento", err.Error()))
		return
	}

	if err := c.attendanceRepo.Create(ctx, a); err != nil {
		c.logger.Error("erro ao criar atendimento no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar atendimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAttendanceResponse(a))
}

// Get retorna um atendimento pelo ID
// @Summary Buscar atendimento
// @Description Retorna os dados de um atendimento com cliente e procedimento
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendimento"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances/{id} [get]
func (c *AttendanceController) Get(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	a, err := c.attendanceRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "atendimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar atendimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar atendimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAttendanceDetailResponse(a))
}

// List retorna a lista de atendimentos
// @Summary Listar atendimentos
// @Description Retorna a lista paginada de atendimentos com filtros
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param payment_status query string false "Status de pagamento"
// @Param payment_method query string false "Forma de pagamento"
// @Param client_id query string false "ID do cliente"
// @Param procedure_id query string false "ID do procedimento"
// @Param date_from query string false "Data inicial (2006-01-02)"
// @Param date_to query string false "Data final (2006-01-02)"
// @Param sort query string false "Campo de ordenação"
// @Param order query string false "Direção (asc ou desc)"
// @Success 200 {object} dto.AttendanceListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	page, size := parsePageQuery(ctx)
	offset := (page - 1) * size

	filter := attendancedomain.Filter{
		PaymentStatus: attendancedomain.PaymentStatus(ctx.Query("payment_status")),
		PaymentMethod: attendancedomain.PaymentMethod(ctx.Query("payment_method")),
		ClientID:      ctx.Query("client_id"),
		ProcedureID:   ctx.Query("procedure_id"),
		DateFrom:      parseDateQuery(ctx, "date_from"),
		DateTo:        parseEndDateQuery(ctx, "date_to"),
	}
	sort := attendancedomain.Sort{
		Field:      ctx.Query("sort"),
		Descending: ctx.Query("order") == "desc",
	}

	rows, total, err := c.attendanceRepo.ListWithDetails(ctx, userID, filter, sort, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar atendimentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar atendimentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAttendanceListResponse(rows, total, page, size))
}

// Update atualiza um atendimento
// @Summary Atualizar atendimento
// @Description Atualiza os dados de um atendimento existente
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendimento"
// @Param attendance body dto.AttendanceRequest true "Dados do atendimento"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances/{id} [put]
func (c *AttendanceController) Update(ctx *gin.Context) {
	var req dto.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	existing, err := c.attendanceRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "atendimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar atendimento para atualização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar atendimento", err.Error()))
		return
	}

	a := existing.Attendance
	a.ClientID = req.ClientID
	a.ProcedureID = req.ProcedureID
	a.Date = req.Date
	a.Value = req.Value
	a.Discount = req.Discount
	a.ProductCost = req.ProductCost
	a.PaymentMethod = attendancedomain.PaymentMethod(req.PaymentMethod)
	if req.PaymentStatus != "" {
		a.PaymentStatus = attendancedomain.PaymentStatus(req.PaymentStatus)
	}
	a.Notes = req.Notes
	a.SatisfactionRating = req.SatisfactionRating

	if err := a.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar atendimento", err.Error()))
		return
	}

	if err := c.attendanceRepo.Update(ctx, &a); err != nil {
		c.logger.Error("erro ao atualizar atendimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar atendimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAttendanceResponse(&a))
}

// UpdateStatus atualiza o status de pagamento de um atendimento
// @Summary Atualizar status de pagamento
// @Description Atualiza apenas o status de pagamento do atendimento
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendimento"
// @Param status body dto.AttendanceStatusRequest true "Novo status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances/{id}/status [patch]
func (c *AttendanceController) UpdateStatus(ctx *gin.Context) {
	var req dto.AttendanceStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	status := attendancedomain.PaymentStatus(req.PaymentStatus)
	if !status.IsValid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status de pagamento inválido", req.PaymentStatus))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	if err := c.attendanceRepo.UpdatePaymentStatus(ctx, userID, id, status); err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "atendimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao atualizar status de pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar status", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("status de pagamento atualizado", nil))
}

// Delete remove um atendimento
// @Summary Remover atendimento
// @Description Remove um atendimento do sistema
// @Tags attendances
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendimento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attendances/{id} [delete]
func (c *AttendanceController) Delete(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	if err := c.attendanceRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "atendimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao remover atendimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover atendimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("atendimento removido", nil))
}
