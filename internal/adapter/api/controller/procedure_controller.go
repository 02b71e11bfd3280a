package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/dto"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	proceduredomain "github.com/marianaduarte/erp-estetica/internal/domain/procedure"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// ProcedureController gerencia as requisições relacionadas a procedimentos
type ProcedureController struct {
	procedureRepo proceduredomain.Repository
	logger        logger.Logger
}

// NewProcedureController cria uma nova instância de ProcedureController
func NewProcedureController(procedureRepo proceduredomain.Repository, logger logger.Logger) *ProcedureController {
	return &ProcedureController{
		procedureRepo: procedureRepo,
		logger:        logger,
	}
}

// Create cria um novo procedimento
// @Summary Criar procedimento
// @Description Cadastra um novo procedimento no catálogo da clínica
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param procedure body dto.ProcedureRequest true "Dados do procedimento"
// @Success 201 {object} dto.ProcedureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures [post]
func (c *ProcedureController) Create(ctx *gin.Context) {
	var req dto.ProcedureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	p, err := proceduredomain.NewProcedure(userID, req.Name, req.Category, req.Price, req.Cost, req.DurationMinutes)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar procedimento", err.Error()))
		return
	}
	p.Description = req.Description

	if err := c.procedureRepo.Create(ctx, p); err != nil {
		c.logger.Error("erro ao criar procedimento no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar procedimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProcedureResponse(p))
}

// Get retorna um procedimento pelo ID
// @Summary Buscar procedimento
// @Description Retorna os dados de um procedimento pelo ID
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do procedimento"
// @Success 200 {object} dto.ProcedureResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures/{id} [get]
func (c *ProcedureController) Get(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	p, err := c.procedureRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrProcedureNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "procedimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar procedimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar procedimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcedureResponse(p))
}

// List retorna a lista de procedimentos
// @Summary Listar procedimentos
// @Description Retorna a lista paginada de procedimentos com filtros
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param category query string false "Categoria"
// @Param is_active query bool false "Somente ativos ou inativos"
// @Param search query string false "Busca em nome e descrição"
// @Param sort query string false "Campo de ordenação"
// @Param order query string false "Direção (asc ou desc)"
// @Success 200 {object} dto.ProcedureListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures [get]
func (c *ProcedureController) List(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	page, size := parsePageQuery(ctx)
	offset := (page - 1) * size

	filter := proceduredomain.Filter{
		Category:   ctx.Query("category"),
		IsActive:   parseBoolQuery(ctx, "is_active"),
		SearchTerm: ctx.Query("search"),
	}
	sort := proceduredomain.Sort{
		Field:      ctx.Query("sort"),
		Descending: ctx.Query("order") == "desc",
	}

	procedures, total, err := c.procedureRepo.List(ctx, userID, filter, sort, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar procedimentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar procedimentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcedureListResponse(procedures, total, page, size))
}

// Update atualiza um procedimento
// @Summary Atualizar procedimento
// @Description Atualiza os dados de um procedimento do catálogo
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do procedimento"
// @Param procedure body dto.ProcedureRequest true "Dados do procedimento"
// @Success 200 {object} dto.ProcedureResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures/{id} [put]
func (c *ProcedureController) Update(ctx *gin.Context) {
	var req dto.ProcedureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	p, err := c.procedureRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrProcedureNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "procedimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar procedimento para atualização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar procedimento", err.Error()))
		return
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.Price = req.Price
	p.Cost = req.Cost
	p.DurationMinutes = req.DurationMinutes

	if err := p.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar procedimento", err.Error()))
		return
	}

	if err := c.procedureRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao atualizar procedimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar procedimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcedureResponse(p))
}

// ToggleStatus alterna o estado ativo/inativo de um procedimento
// @Summary Alternar status do procedimento
// @Description Ativa ou desativa um procedimento do catálogo
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do procedimento"
// @Success 200 {object} dto.ProcedureResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures/{id}/toggle-status [patch]
func (c *ProcedureController) ToggleStatus(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	p, err := c.procedureRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrProcedureNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "procedimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar procedimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar procedimento", err.Error()))
		return
	}

	p.ToggleStatus()
	if err := c.procedureRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao alternar status do procedimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar procedimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcedureResponse(p))
}

// Delete remove um procedimento
// @Summary Remover procedimento
// @Description Remove um procedimento do catálogo
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do procedimento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures/{id} [delete]
func (c *ProcedureController) Delete(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	if err := c.procedureRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrProcedureNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "procedimento não encontrado", ""))
			return
		}
		c.logger.Error("erro ao remover procedimento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover procedimento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("procedimento removido", nil))
}

// Categories retorna as categorias de procedimentos
// @Summary Categorias de procedimentos
// @Description Retorna as categorias distintas dos procedimentos do usuário
// @Tags procedures
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procedures/categories [get]
func (c *ProcedureController) Categories(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	categories, err := c.procedureRepo.ListCategories(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao listar categorias de procedimentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar categorias", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}
