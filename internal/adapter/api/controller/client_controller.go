package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marianaduarte/erp-estetica/internal/adapter/api/dto"
	"github.com/marianaduarte/erp-estetica/internal/adapter/repository"
	clientdomain "github.com/marianaduarte/erp-estetica/internal/domain/client"
	"github.com/marianaduarte/erp-estetica/internal/service"
	"github.com/marianaduarte/erp-estetica/pkg/auth"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// ClientController gerencia as requisições relacionadas a clientes
type ClientController struct {
	clientRepo    clientdomain.Repository
	clientService *service.ClientService
	logger        logger.Logger
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(clientRepo clientdomain.Repository, clientService *service.ClientService, logger logger.Logger) *ClientController {
	return &ClientController{
		clientRepo:    clientRepo,
		clientService: clientService,
		logger:        logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cadastra um novo cliente da clínica
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)

	cl, err := clientdomain.NewClient(userID, req.Name, req.Email, req.Phone)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}
	cl.BirthDate = req.BirthDate
	cl.Notes = req.Notes

	if err := c.clientRepo.Create(ctx, cl); err != nil {
		c.logger.Error("erro ao criar cliente no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(cl))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	cl, err := c.clientRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(cl))
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Description Retorna a lista paginada de clientes com filtros
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param segment query string false "Segmento"
// @Param is_active query bool false "Somente ativos ou inativos"
// @Param search query string false "Busca em nome, email e telefone"
// @Param sort query string false "Campo de ordenação"
// @Param order query string false "Direção (asc ou desc)"
// @Success 200 {object} dto.ClientListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	page, size := parsePageQuery(ctx)
	offset := (page - 1) * size

	filter := clientdomain.Filter{
		Segment:    clientdomain.Segment(ctx.Query("segment")),
		IsActive:   parseBoolQuery(ctx, "is_active"),
		SearchTerm: ctx.Query("search"),
	}
	sort := clientdomain.Sort{
		Field:      ctx.Query("sort"),
		Descending: ctx.Query("order") == "desc",
	}

	clients, total, err := c.clientRepo.List(ctx, userID, filter, sort, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(clients, total, page, size))
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados cadastrais de um cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	cl, err := c.clientRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar cliente para atualização", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if err := cl.Update(req.Name, req.Email, req.Phone, req.BirthDate, req.Notes); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar cliente", err.Error()))
		return
	}

	if err := c.clientRepo.Update(ctx, cl); err != nil {
		c.logger.Error("erro ao atualizar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(cl))
}

// Delete remove um cliente
// @Summary Remover cliente
// @Description Remove um cliente do sistema
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)
	id := ctx.Param("id")

	if err := c.clientRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("erro ao remover cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente removido", nil))
}

// RecomputeSegments recalcula os segmentos de todos os clientes
// @Summary Recalcular segmentos
// @Description Recalcula os acumulados e o segmento de todos os clientes ativos a partir dos atendimentos pagos
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} service.SegmentationResult
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/recompute-segments [post]
func (c *ClientController) RecomputeSegments(ctx *gin.Context) {
	userID := auth.GetUserID(ctx)

	result, err := c.clientService.RecomputeSegments(ctx, userID)
	if err != nil {
		c.logger.Error("erro ao recalcular segmentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao recalcular segmentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
